// Package seed implements the demo data seeding subcommand.
package seed

import (
	"fmt"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/demodata"
	"github.com/spf13/cobra"
)

// Command creates the seed subcommand. Seeding is idempotent; a second run
// reports that the data was already present.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings)
		},
	}
}

func run(settings *conf.Settings) error {
	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	seeded, err := demodata.Seed(store, settings.Report.GeneratedBy)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Println("Demo data seeded.")
	} else {
		fmt.Println("Demo data already present, nothing to do.")
	}
	return nil
}
