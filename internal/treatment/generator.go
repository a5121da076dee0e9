// generator.go: instantiates catalog entries for a diagnosed record
package treatment

import (
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
)

// Recommend derives the treatment recommendations for one observation. The
// result preserves catalog order; chemical entries are included only when the
// diagnosis confidence strictly exceeds their gate. The returned
// recommendations are not yet persisted and carry the record's identifier,
// which may be zero for an unsaved record.
func Recommend(rec *model.CropHealthRecord) []model.TreatmentRecommendation {
	return RecommendAt(rec, time.Now())
}

// RecommendAt is Recommend with an explicit derivation time.
func RecommendAt(rec *model.CropHealthRecord, at time.Time) []model.TreatmentRecommendation {
	status, _ := model.ParseHealthStatus(string(rec.HealthStatus))
	entries := catalog[status]

	recs := make([]model.TreatmentRecommendation, 0, len(entries))
	for _, e := range entries {
		if e.Gate > 0 && rec.Confidence <= e.Gate {
			continue
		}
		recs = append(recs, model.TreatmentRecommendation{
			CropHealthRecordID:  rec.ID,
			TreatmentType:       e.Type,
			Title:               e.Title,
			Description:         e.Description,
			Instructions:        e.Instructions,
			SustainabilityLevel: e.SustainabilityLevel,
			Effectiveness:       e.Effectiveness,
			Cost:                e.Cost,
			TimeToApply:         e.TimeToApply,
			ActiveIngredients:   e.ActiveIngredients,
			SafetyNotes:         e.SafetyNotes,
			Timestamp:           at,
		})
	}
	return recs
}

// CatalogSize returns the number of catalog entries for a status before
// gating, used by coverage checks.
func CatalogSize(status model.HealthStatus) int {
	return len(catalog[status])
}
