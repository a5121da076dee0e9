package report

import (
	"strings"
	"testing"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWithStatuses(statuses map[model.HealthStatus]int) []model.CropHealthRecord {
	var records []model.CropHealthRecord
	for status, n := range statuses {
		for i := 0; i < n; i++ {
			records = append(records, model.CropHealthRecord{HealthStatus: status})
		}
	}
	return records
}

func TestBuildLowRisk(t *testing.T) {
	t.Parallel()

	records := recordsWithStatuses(map[model.HealthStatus]int{
		model.HealthStatusHealthy:    16,
		model.HealthStatusPestDamage: 4,
	})
	rep := Build(records, "Poblacion", model.ReportTypeWeekly, "AgriSight System")

	assert.Equal(t, 20, rep.TotalRecords)
	assert.Equal(t, 16, rep.HealthyCrops)
	assert.Equal(t, 80, rep.HealthPercentage())
	assert.Equal(t, model.RiskLevelLow, rep.RiskLevel)
	assert.False(t, rep.InterventionNeeded)
	assert.False(t, rep.Synced)
	assert.Equal(t, "Poblacion", rep.BarangayName)
	assert.Equal(t, "AgriSight System", rep.GeneratedBy)
}

func TestBuildCriticalRisk(t *testing.T) {
	t.Parallel()

	records := recordsWithStatuses(map[model.HealthStatus]int{
		model.HealthStatusHealthy: 7,
		model.HealthStatusDisease: 13,
	})
	rep := Build(records, "San Jose", model.ReportTypeEmergency, "AgriSight System")

	assert.Equal(t, 35, rep.HealthPercentage())
	assert.Equal(t, model.RiskLevelCritical, rep.RiskLevel)
	assert.True(t, rep.InterventionNeeded)
	assert.Contains(t, rep.Recommendations, "URGENT: Deploy emergency response team")
}

func TestBuildRiskBandBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		healthy, sick int
		want          model.RiskLevel
	}{
		{80, 20, model.RiskLevelLow},
		{79, 21, model.RiskLevelMedium},
		{60, 40, model.RiskLevelMedium},
		{59, 41, model.RiskLevelHigh},
		{40, 60, model.RiskLevelHigh},
		{39, 61, model.RiskLevelCritical},
		{0, 100, model.RiskLevelCritical},
	}

	for _, tt := range tests {
		records := recordsWithStatuses(map[model.HealthStatus]int{
			model.HealthStatusHealthy:             tt.healthy,
			model.HealthStatusEnvironmentalStress: tt.sick,
		})
		rep := Build(records, "Barangay 1", model.ReportTypeDaily, "test")
		assert.Equal(t, tt.want, rep.RiskLevel, "healthy=%d sick=%d", tt.healthy, tt.sick)
	}
}

func TestBuildEmptyWindow(t *testing.T) {
	t.Parallel()

	rep := Build(nil, "Santa Maria", model.ReportTypeMonthly, "test")
	assert.Equal(t, 0, rep.TotalRecords)
	assert.Equal(t, 0, rep.HealthPercentage())
	// Zero percent healthy is the worst band.
	assert.Equal(t, model.RiskLevelCritical, rep.RiskLevel)
	assert.True(t, rep.InterventionNeeded)
}

func TestBuildRecommendationFormat(t *testing.T) {
	t.Parallel()

	records := recordsWithStatuses(map[model.HealthStatus]int{
		model.HealthStatusHealthy:            17,
		model.HealthStatusNutrientDeficiency: 2,
		model.HealthStatusPestDamage:         1,
	})
	rep := Build(records, "San Pedro", model.ReportTypeWeekly, "test")

	require.True(t, strings.HasPrefix(rep.Recommendations, "• "))
	lines := strings.Split(rep.Recommendations, "\n• ")
	// Two preamble lines for low risk plus two issue lines.
	require.Len(t, lines, 4)
	assert.Equal(t, "• Continue current agricultural practices", lines[0])
	assert.Contains(t, rep.Recommendations, "Address soil nutrient deficiencies in 2 areas")
	assert.Contains(t, rep.Recommendations, "Implement pest control measures in 1 affected areas")
	assert.NotContains(t, rep.Recommendations, "disease management")
}

func TestBuildNormalizesLegacyStatuses(t *testing.T) {
	t.Parallel()

	records := []model.CropHealthRecord{
		{HealthStatus: "PEST_INFESTATION"},
		{HealthStatus: model.HealthStatusHealthy},
	}
	rep := Build(records, "Barangay 2", model.ReportTypeDaily, "test")
	assert.Equal(t, 1, rep.PestDamage)
	assert.Equal(t, 1, rep.HealthyCrops)
}

func TestBuildAtUsesGivenTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	rep := BuildAt(nil, "Barangay 3", model.ReportTypeWeekly, "test", at)
	assert.Equal(t, at, rep.GeneratedAt)
}
