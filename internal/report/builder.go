// Package report builds aggregate LGU reports from crop health observations.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
)

// Risk bands over the healthy percentage of a locality's records.
const (
	lowRiskMinPct    = 80
	mediumRiskMinPct = 60
	highRiskMinPct   = 40
)

// Build computes an aggregate report over the given records. Records are
// assumed to belong to the named barangay and reporting window; the builder
// counts, classifies and renders, it does not filter. The report is unsaved
// and unsynced.
func Build(records []model.CropHealthRecord, barangay string, reportType model.ReportType, generatedBy string) *model.LGUReport {
	return BuildAt(records, barangay, reportType, generatedBy, time.Now())
}

// BuildAt is Build with an explicit generation time.
func BuildAt(records []model.CropHealthRecord, barangay string, reportType model.ReportType, generatedBy string, at time.Time) *model.LGUReport {
	r := &model.LGUReport{
		ReportType:   reportType,
		BarangayName: barangay,
		TotalRecords: len(records),
		GeneratedBy:  generatedBy,
		GeneratedAt:  at,
	}

	for i := range records {
		status, _ := model.ParseHealthStatus(string(records[i].HealthStatus))
		switch status {
		case model.HealthStatusHealthy:
			r.HealthyCrops++
		case model.HealthStatusNutrientDeficiency:
			r.NutrientDeficiency++
		case model.HealthStatusPestDamage:
			r.PestDamage++
		case model.HealthStatusDisease:
			r.Disease++
		case model.HealthStatusEnvironmentalStress:
			r.EnvironmentalStress++
		}
	}

	r.RiskLevel = riskLevelFor(r.HealthPercentage())
	r.InterventionNeeded = r.RiskLevel == model.RiskLevelHigh || r.RiskLevel == model.RiskLevelCritical
	r.Recommendations = renderRecommendations(r)
	return r
}

func riskLevelFor(healthPct int) model.RiskLevel {
	switch {
	case healthPct >= lowRiskMinPct:
		return model.RiskLevelLow
	case healthPct >= mediumRiskMinPct:
		return model.RiskLevelMedium
	case healthPct >= highRiskMinPct:
		return model.RiskLevelHigh
	default:
		return model.RiskLevelCritical
	}
}

// renderRecommendations assembles the report's advisory text: a fixed
// per-risk preamble followed by one line per nonzero issue count, each line
// bulleted.
func renderRecommendations(r *model.LGUReport) string {
	var lines []string

	switch r.RiskLevel {
	case model.RiskLevelLow:
		lines = append(lines,
			"Continue current agricultural practices",
			"Maintain regular monitoring schedule")
	case model.RiskLevelMedium:
		lines = append(lines,
			"Increase monitoring frequency",
			"Consider preventive measures")
	case model.RiskLevelHigh:
		lines = append(lines,
			"Immediate intervention required",
			"Coordinate with agricultural extension services")
	case model.RiskLevelCritical:
		lines = append(lines,
			"URGENT: Deploy emergency response team",
			"Coordinate with regional agricultural office",
			"Implement immediate treatment protocols")
	}

	if r.NutrientDeficiency > 0 {
		lines = append(lines, fmt.Sprintf("Address soil nutrient deficiencies in %d areas", r.NutrientDeficiency))
	}
	if r.PestDamage > 0 {
		lines = append(lines, fmt.Sprintf("Implement pest control measures in %d affected areas", r.PestDamage))
	}
	if r.Disease > 0 {
		lines = append(lines, fmt.Sprintf("Apply disease management protocols in %d affected areas", r.Disease))
	}
	if r.EnvironmentalStress > 0 {
		lines = append(lines, fmt.Sprintf("Mitigate environmental stress in %d affected areas", r.EnvironmentalStress))
	}

	return "• " + strings.Join(lines, "\n• ")
}
