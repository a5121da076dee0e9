// Package serve implements the HTTP service subcommand.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/api"
	"github.com/cvsuagritech/agrisight-go/internal/assessment"
	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/demodata"
	"github.com/cvsuagritech/agrisight-go/internal/gamification"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/observability"
	reportsync "github.com/cvsuagritech/agrisight-go/internal/sync"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

// Command creates the serve subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the AgriSight HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings)
		},
	}
	cmd.Flags().StringVar(&settings.Web.Port, "port", settings.Web.Port, "HTTP listen port")
	return cmd
}

func run(settings *conf.Settings) error {
	log := logging.ForService("serve")

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer closeStore(store)

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if ds, ok := store.(interface {
		SetMetrics(*observability.DatastoreMetrics)
	}); ok {
		ds.SetMetrics(metrics.Datastore)
	}

	if settings.DemoData.Enabled {
		seeded, err := demodata.Seed(store, settings.Report.GeneratedBy)
		if err != nil {
			return err
		}
		if seeded {
			log.Info("demo data seeded on startup")
		}
	}

	assessor, err := assessment.New(settings, nil)
	if err != nil {
		return err
	}

	var gamStore *gamification.Store
	if settings.Gamification.Enabled {
		gamStore, err = gamification.Open(settings)
		if err != nil {
			return err
		}
		defer func() { _ = gamStore.Close() }()
	}

	var publisher *reportsync.Publisher
	if settings.Sync.MQTT.Enabled {
		publisher = reportsync.NewPublisher(settings, store, reportsync.NewClient(settings), metrics.Sync)
	}

	e := echo.New()
	e.HideBanner = true
	controller := api.New(e, store, settings, assessor, gamStore, publisher, metrics)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + settings.Web.Port
		log.Info("http service listening", "addr", addr)
		errCh <- e.Start(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return controller.Shutdown(ctx)
	}
}

func closeStore(store datastore.Interface) {
	if err := store.Close(); err != nil {
		logging.ForService("serve").Error("failed to close datastore", "error", err)
	}
	_ = datastore.CloseLogger()
}
