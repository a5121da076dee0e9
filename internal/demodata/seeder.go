// Package demodata seeds a fresh installation with representative crop
// health data so dashboards and reports have something to show.
package demodata

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/assessment"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/cvsuagritech/agrisight-go/internal/report"
	"github.com/cvsuagritech/agrisight-go/internal/treatment"
)

const (
	// SeedName guards the demo seed through the store's seed markers.
	SeedName = "demo-data-v1"

	sampleRecordCount = 20
	sampleReportCount = 3
	sampleWindowDays  = 30
)

var sampleNotes = map[model.HealthStatus]string{
	model.HealthStatusHealthy:             "Crop appears to be in excellent condition with no visible issues.",
	model.HealthStatusNutrientDeficiency:  "Yellowing leaves observed, possible nitrogen deficiency.",
	model.HealthStatusPestDamage:          "Visible pest damage on leaves, holes and discoloration present.",
	model.HealthStatusDisease:             "Fungal infection detected, brown spots on leaves.",
	model.HealthStatusEnvironmentalStress: "Signs of stress due to weather conditions.",
}

// Seed populates the store with sample records, their recommendations and a
// few weekly reports. It is idempotent: the store's seed marker makes repeat
// calls no-ops. Returns true when the seed ran.
func Seed(store datastore.Interface, generatedBy string) (bool, error) {
	return SeedWithRand(store, generatedBy,
		rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 2)))
}

// SeedWithRand is Seed with an injectable random source.
func SeedWithRand(store datastore.Interface, generatedBy string, rng *rand.Rand) (bool, error) {
	seeded, err := store.EnsureSeeded(SeedName, func(tx *datastore.DataStore) error {
		if err := seedRecords(tx, rng); err != nil {
			return err
		}
		return seedReports(tx, generatedBy, rng)
	})
	if err != nil {
		return false, err
	}
	if seeded {
		logging.ForService("demodata").Info("demo data seeded",
			"records", sampleRecordCount, "reports", sampleReportCount)
	}
	return seeded, nil
}

func seedRecords(tx *datastore.DataStore, rng *rand.Rand) error {
	now := time.Now()
	simulator := assessment.NewSimulatedAssessor("Rice").WithRand(rng)

	for i := 0; i < sampleRecordCount; i++ {
		rec, err := simulator.Assess(context.Background(), nil)
		if err != nil {
			return err
		}
		daysAgo := rng.IntN(sampleWindowDays)
		rec.Timestamp = now.AddDate(0, 0, -daysAgo)
		rec.Notes = sampleNotes[rec.HealthStatus]

		id, err := tx.SaveCropHealthRecord(rec)
		if err != nil {
			return err
		}
		rec.ID = id

		if err := tx.SaveTreatmentRecommendations(treatment.RecommendAt(rec, rec.Timestamp)); err != nil {
			return err
		}
	}
	return nil
}

func seedReports(tx *datastore.DataStore, generatedBy string, rng *rand.Rand) error {
	now := time.Now()

	for i := 0; i < sampleReportCount; i++ {
		barangay := assessment.Barangays[i]
		generatedAt := now.AddDate(0, 0, -7*i)

		total := 15 + rng.IntN(20)
		healthy := int(float64(total)*0.6) + rng.IntN(int(float64(total)*0.3)+1)
		if healthy > total {
			healthy = total
		}
		remaining := total - healthy
		nutrient := randBelow(rng, remaining/2)
		pest := randBelow(rng, remaining-nutrient)
		disease := randBelow(rng, remaining-nutrient-pest)
		envStress := remaining - nutrient - pest - disease

		records := syntheticRecords(barangay, generatedAt, healthy, nutrient, pest, disease, envStress)
		rep := report.BuildAt(records, barangay, model.ReportTypeWeekly, generatedBy, generatedAt)
		if _, err := tx.SaveLGUReport(rep); err != nil {
			return err
		}
	}
	return nil
}

// syntheticRecords fabricates just enough record stubs for the report builder
// to count. Only the health status matters.
func syntheticRecords(barangay string, at time.Time, healthy, nutrient, pest, disease, envStress int) []model.CropHealthRecord {
	var records []model.CropHealthRecord
	add := func(status model.HealthStatus, n int) {
		for i := 0; i < n; i++ {
			records = append(records, model.CropHealthRecord{
				CropType:     "Rice",
				HealthStatus: status,
				GrowthStage:  model.DefaultGrowthStage,
				Location:     barangay,
				Timestamp:    at,
			})
		}
	}
	add(model.HealthStatusHealthy, healthy)
	add(model.HealthStatusNutrientDeficiency, nutrient)
	add(model.HealthStatusPestDamage, pest)
	add(model.HealthStatusDisease, disease)
	add(model.HealthStatusEnvironmentalStress, envStress)
	return records
}

func randBelow(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.IntN(n)
}
