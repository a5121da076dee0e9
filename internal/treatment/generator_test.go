package treatment

import (
	"testing"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendHealthySinglePrevention(t *testing.T) {
	t.Parallel()

	rec := &model.CropHealthRecord{
		ID:           7,
		HealthStatus: model.HealthStatusHealthy,
		Confidence:   0.9,
	}
	recs := Recommend(rec)

	require.Len(t, recs, 1)
	assert.Equal(t, model.TreatmentTypePrevention, recs[0].TreatmentType)
	assert.Equal(t, "Maintain Soil Health", recs[0].Title)
	assert.InDelta(t, 0.85, recs[0].Effectiveness, 1e-9)
	assert.Equal(t, 0.0, recs[0].Cost)
	assert.Equal(t, uint(7), recs[0].CropHealthRecordID)
}

func TestRecommendPestDamageChemicalGate(t *testing.T) {
	t.Parallel()

	low := &model.CropHealthRecord{HealthStatus: model.HealthStatusPestDamage, Confidence: 0.5}
	recs := Recommend(low)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEqual(t, model.TreatmentTypeChemical, r.TreatmentType)
	}

	high := &model.CropHealthRecord{HealthStatus: model.HealthStatusPestDamage, Confidence: 0.95}
	recs = Recommend(high)
	require.Len(t, recs, 3)
	assert.Equal(t, model.TreatmentTypeChemical, recs[2].TreatmentType)
	assert.Equal(t, "Targeted Pesticide", recs[2].Title)
	assert.Equal(t, "Neem oil, Pyrethrin", recs[2].ActiveIngredients)
	assert.NotEmpty(t, recs[2].SafetyNotes)
}

func TestRecommendPestDamageGateIsExclusive(t *testing.T) {
	t.Parallel()

	// Exactly at the gate the chemical entry is excluded.
	at := &model.CropHealthRecord{HealthStatus: model.HealthStatusPestDamage, Confidence: 0.80}
	assert.Len(t, Recommend(at), 2)

	above := &model.CropHealthRecord{HealthStatus: model.HealthStatusPestDamage, Confidence: 0.81}
	assert.Len(t, Recommend(above), 3)
}

func TestRecommendDiseaseChemicalGate(t *testing.T) {
	t.Parallel()

	low := &model.CropHealthRecord{HealthStatus: model.HealthStatusDisease, Confidence: 0.75}
	assert.Len(t, Recommend(low), 2)

	high := &model.CropHealthRecord{HealthStatus: model.HealthStatusDisease, Confidence: 0.76}
	recs := Recommend(high)
	require.Len(t, recs, 3)
	assert.Equal(t, "Fungicide Treatment", recs[2].Title)
	assert.Equal(t, "Copper hydroxide, Azoxystrobin", recs[2].ActiveIngredients)
}

func TestRecommendCatalogOrder(t *testing.T) {
	t.Parallel()

	recs := Recommend(&model.CropHealthRecord{HealthStatus: model.HealthStatusNutrientDeficiency, Confidence: 0.8})
	require.Len(t, recs, 2)
	assert.Equal(t, model.TreatmentTypeCultural, recs[0].TreatmentType)
	assert.Equal(t, "Soil Amendment", recs[0].Title)
	assert.Equal(t, model.TreatmentTypeBiological, recs[1].TreatmentType)
	assert.Equal(t, "Biofertilizer Application", recs[1].Title)

	recs = Recommend(&model.CropHealthRecord{HealthStatus: model.HealthStatusEnvironmentalStress, Confidence: 0.9})
	require.Len(t, recs, 2)
	assert.Equal(t, "Environmental Management", recs[0].Title)
	assert.Equal(t, "Stress Relief Treatment", recs[1].Title)
}

func TestRecommendUnknownStatusUsesDefault(t *testing.T) {
	t.Parallel()

	// An unrecognized stored status decodes to the default member, which has
	// catalog entries of its own.
	recs := Recommend(&model.CropHealthRecord{HealthStatus: "SOMETHING_OLD", Confidence: 0.9})
	require.Len(t, recs, CatalogSize(model.DefaultHealthStatus))
}

func TestRecommendAtTimestamps(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	recs := RecommendAt(&model.CropHealthRecord{HealthStatus: model.HealthStatusHealthy, Confidence: 0.9}, at)
	require.Len(t, recs, 1)
	assert.Equal(t, at, recs[0].Timestamp)
}
