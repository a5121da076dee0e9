// Package report implements the report generation subcommand.
package report

import (
	"fmt"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	reportbuilder "github.com/cvsuagritech/agrisight-go/internal/report"
	"github.com/spf13/cobra"
)

// Command creates the report subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	var barangay, reportType string
	var sinceDays int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an aggregate LGU report for a barangay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings, barangay, reportType, sinceDays)
		},
	}
	cmd.Flags().StringVarP(&barangay, "barangay", "b", "", "Barangay to report on (required)")
	cmd.Flags().StringVarP(&reportType, "type", "t", "WEEKLY", "Report type (DAILY, WEEKLY, MONTHLY, SEASONAL, EMERGENCY)")
	cmd.Flags().IntVar(&sinceDays, "since-days", 7, "Window of records to aggregate, in days")
	_ = cmd.MarkFlagRequired("barangay")
	return cmd
}

func run(settings *conf.Settings, barangay, rawType string, sinceDays int) error {
	reportType, ok := model.ParseReportType(rawType)
	if !ok {
		return fmt.Errorf("unknown report type: %s", rawType)
	}

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var since time.Time
	if sinceDays > 0 {
		since = time.Now().AddDate(0, 0, -sinceDays)
	}
	records, err := store.GetCropHealthRecordsByLocation(barangay, since)
	if err != nil {
		return err
	}

	rep := reportbuilder.Build(records, barangay, reportType, settings.Report.GeneratedBy)
	id, err := store.SaveLGUReport(rep)
	if err != nil {
		return err
	}

	fmt.Printf("Report #%d — %s, %s\n", id, barangay, reportType.DisplayName())
	fmt.Print(rep.Summary())
	fmt.Printf("Recommendations:\n%s\n", rep.Recommendations)
	return nil
}
