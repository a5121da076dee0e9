// Package analyze implements the one-shot analysis subcommand.
package analyze

import (
	"context"
	"fmt"
	"os"

	"github.com/cvsuagritech/agrisight-go/internal/assessment"
	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/treatment"
	"github.com/spf13/cobra"
)

// Command creates the analyze subcommand. It assesses an optional image file,
// persists the record and its recommendations, and prints the outcome.
func Command(settings *conf.Settings) *cobra.Command {
	var imagePath, location, notes string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Assess a crop image and store the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings, imagePath, location, notes)
		},
	}
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Path to a crop photo (optional)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Barangay the observation belongs to")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form field notes")
	return cmd
}

func run(settings *conf.Settings, imagePath, location, notes string) error {
	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var image []byte
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		image = data
	}

	assessor, err := assessment.New(settings, nil)
	if err != nil {
		return err
	}

	record, err := assessor.Assess(context.Background(), image)
	if err != nil {
		return err
	}
	if location != "" {
		record.Location = location
	}
	if notes != "" {
		record.Notes = notes
	}

	id, err := store.SaveCropHealthRecord(record)
	if err != nil {
		return err
	}
	record.ID = id

	recs := treatment.Recommend(record)
	if err := store.SaveTreatmentRecommendations(recs); err != nil {
		return err
	}

	fmt.Printf("Record #%d: %s (%d%% confidence), %s, %s\n",
		id, record.HealthStatus.DisplayName(), record.ConfidencePercent(),
		record.GrowthStage.DisplayName(), record.Location)
	for i := range recs {
		fmt.Printf("  - [%s] %s (effectiveness %d%%)\n",
			recs[i].TreatmentType.DisplayName(), recs[i].Title, recs[i].EffectivenessPercent())
	}
	return nil
}
