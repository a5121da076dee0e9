// Package sync implements the report sync subcommand.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	reportsync "github.com/cvsuagritech/agrisight-go/internal/sync"
	"github.com/spf13/cobra"
)

// Command creates the sync subcommand. It publishes pending LGU reports to
// the configured broker and exits.
func Command(settings *conf.Settings) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Publish pending LGU reports to the broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings, timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Overall publish timeout")
	return cmd
}

func run(settings *conf.Settings, timeout time.Duration) error {
	if !settings.Sync.MQTT.Enabled {
		return fmt.Errorf("sync.mqtt is not enabled in the configuration")
	}

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client := reportsync.NewClient(settings)
	defer client.Disconnect()

	publisher := reportsync.NewPublisher(settings, store, client, nil)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	published, err := publisher.PublishPending(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Published %d report(s).\n", published)
	return nil
}
