// report.go: LGU aggregate report data model.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ReportType classifies the reporting window of an LGU report.
type ReportType string

const (
	ReportTypeDaily     ReportType = "DAILY"
	ReportTypeWeekly    ReportType = "WEEKLY"
	ReportTypeMonthly   ReportType = "MONTHLY"
	ReportTypeSeasonal  ReportType = "SEASONAL"
	ReportTypeEmergency ReportType = "EMERGENCY"
)

// DefaultReportType is the fallback member for unrecognized stored values.
// An unknown window is surfaced as an emergency report so it gets looked at.
const DefaultReportType = ReportTypeEmergency

// ParseReportType decodes a stored report type string.
func ParseReportType(raw string) (ReportType, bool) {
	t := ReportType(raw)
	if t.Valid() {
		return t, true
	}
	return DefaultReportType, false
}

// Valid reports whether the type is one of the current enumerated members.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly, ReportTypeSeasonal, ReportTypeEmergency:
		return true
	}
	return false
}

// DisplayName returns the user-facing name for the report type.
func (t ReportType) DisplayName() string {
	switch t {
	case ReportTypeDaily:
		return "Daily Report"
	case ReportTypeWeekly:
		return "Weekly Report"
	case ReportTypeMonthly:
		return "Monthly Report"
	case ReportTypeSeasonal:
		return "Seasonal Report"
	case ReportTypeEmergency:
		return "Emergency Report"
	default:
		return string(t)
	}
}

// RiskLevel classifies the overall health risk of a locality.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// DefaultRiskLevel is the fallback member for unrecognized stored values.
const DefaultRiskLevel = RiskLevelMedium

// ParseRiskLevel decodes a stored risk level string.
func ParseRiskLevel(raw string) (RiskLevel, bool) {
	l := RiskLevel(raw)
	if l.Valid() {
		return l, true
	}
	return DefaultRiskLevel, false
}

// Valid reports whether the level is one of the current enumerated members.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// DisplayName returns the user-facing name for the risk level.
func (l RiskLevel) DisplayName() string {
	switch l {
	case RiskLevelLow:
		return "Low Risk"
	case RiskLevelMedium:
		return "Medium Risk"
	case RiskLevelHigh:
		return "High Risk"
	case RiskLevelCritical:
		return "Critical Risk"
	default:
		return string(l)
	}
}

// LGUReport is a point-in-time aggregate snapshot for one barangay.
type LGUReport struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	ReportType          ReportType `gorm:"type:varchar(32);not null" json:"report_type"`
	BarangayName        string     `gorm:"not null;index:idx_reports_barangay" json:"barangay_name"`
	TotalRecords        int        `gorm:"not null" json:"total_records"`
	HealthyCrops        int        `gorm:"not null" json:"healthy_crops"`
	NutrientDeficiency  int        `gorm:"not null" json:"nutrient_deficiency"`
	PestDamage          int        `gorm:"not null" json:"pest_damage"`
	Disease             int        `gorm:"not null" json:"disease"`
	EnvironmentalStress int        `gorm:"not null" json:"environmental_stress"`
	RiskLevel           RiskLevel  `gorm:"type:varchar(32);not null" json:"risk_level"`
	InterventionNeeded  bool       `gorm:"default:false" json:"intervention_needed"`
	Recommendations     string     `json:"recommendations"`
	GeneratedBy         string     `gorm:"not null" json:"generated_by"`
	GeneratedAt         time.Time  `gorm:"not null;index:idx_reports_generated" json:"generated_at"`
	Synced              bool       `gorm:"default:false" json:"synced"`
	SyncedAt            *time.Time `json:"synced_at,omitempty"`
}

// TableName keeps the table name used by the v2 mobile schema.
func (LGUReport) TableName() string {
	return "lgu_reports"
}

// HealthPercentage returns the rounded percentage of healthy crops, 0 when the
// report covers no records.
func (r *LGUReport) HealthPercentage() int {
	if r.TotalRecords <= 0 {
		return 0
	}
	return int(math.Round(float64(r.HealthyCrops) / float64(r.TotalRecords) * 100))
}

// IssueCount returns the sum of the per-issue counts.
func (r *LGUReport) IssueCount() int {
	return r.NutrientDeficiency + r.PestDamage + r.Disease + r.EnvironmentalStress
}

// Summary renders the report statistics as display text.
func (r *LGUReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Records: %d\n", r.TotalRecords)
	fmt.Fprintf(&b, "Healthy Crops: %d (%d%%)\n", r.HealthyCrops, r.HealthPercentage())
	b.WriteString("Issues Detected:\n")
	if r.NutrientDeficiency > 0 {
		fmt.Fprintf(&b, "  - Nutrient Deficiency: %d\n", r.NutrientDeficiency)
	}
	if r.PestDamage > 0 {
		fmt.Fprintf(&b, "  - Pest Damage: %d\n", r.PestDamage)
	}
	if r.Disease > 0 {
		fmt.Fprintf(&b, "  - Disease: %d\n", r.Disease)
	}
	if r.EnvironmentalStress > 0 {
		fmt.Fprintf(&b, "  - Environmental Stress: %d\n", r.EnvironmentalStress)
	}
	fmt.Fprintf(&b, "Risk Level: %s\n", r.RiskLevel.DisplayName())
	if r.InterventionNeeded {
		b.WriteString("Intervention Required\n")
	}
	return b.String()
}
