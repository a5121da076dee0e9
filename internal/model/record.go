// record.go: crop health observation data model.
package model

import (
	"time"
)

// HealthStatus classifies the diagnosed condition of a crop. Values are stored
// as their textual name, matching the schema the mobile clients write.
type HealthStatus string

const (
	HealthStatusHealthy             HealthStatus = "HEALTHY"
	HealthStatusNutrientDeficiency  HealthStatus = "NUTRIENT_DEFICIENCY"
	HealthStatusPestDamage          HealthStatus = "PEST_DAMAGE"
	HealthStatusDisease             HealthStatus = "DISEASE"
	HealthStatusEnvironmentalStress HealthStatus = "ENVIRONMENTAL_STRESS"
)

// DefaultHealthStatus is the designated fallback member for unrecognized
// stored values. EnvironmentalStress is the least specific diagnosis, so a
// record decoded this way never masks a healthy/unhealthy distinction the
// data no longer supports.
const DefaultHealthStatus = HealthStatusEnvironmentalStress

// AllHealthStatuses lists the closed set of statuses in catalog order.
var AllHealthStatuses = []HealthStatus{
	HealthStatusHealthy,
	HealthStatusNutrientDeficiency,
	HealthStatusPestDamage,
	HealthStatusDisease,
	HealthStatusEnvironmentalStress,
}

// healthStatusAliases maps enum spellings from the v1 "pest_records" schema to
// current members.
var healthStatusAliases = map[string]HealthStatus{
	"PEST_INFESTATION":  HealthStatusPestDamage,
	"FUNGAL_DISEASE":    HealthStatusDisease,
	"BACTERIAL_DISEASE": HealthStatusDisease,
	"DROUGHT_STRESS":    HealthStatusEnvironmentalStress,
	"FLOOD_STRESS":      HealthStatusEnvironmentalStress,
}

// ParseHealthStatus decodes a stored status string. It returns the decoded
// member and true for current members and known legacy aliases; otherwise it
// returns DefaultHealthStatus and false so the caller can log the anomaly.
func ParseHealthStatus(raw string) (HealthStatus, bool) {
	s := HealthStatus(raw)
	if s.Valid() {
		return s, true
	}
	if alias, ok := healthStatusAliases[raw]; ok {
		return alias, true
	}
	return DefaultHealthStatus, false
}

// Valid reports whether the status is one of the current enumerated members.
func (s HealthStatus) Valid() bool {
	switch s {
	case HealthStatusHealthy, HealthStatusNutrientDeficiency, HealthStatusPestDamage,
		HealthStatusDisease, HealthStatusEnvironmentalStress:
		return true
	}
	return false
}

// DisplayName returns the user-facing name for the status.
func (s HealthStatus) DisplayName() string {
	switch s {
	case HealthStatusHealthy:
		return "Healthy"
	case HealthStatusNutrientDeficiency:
		return "Nutrient Deficiency"
	case HealthStatusPestDamage:
		return "Pest Damage"
	case HealthStatusDisease:
		return "Disease"
	case HealthStatusEnvironmentalStress:
		return "Environmental Stress"
	default:
		return string(s)
	}
}

// GrowthStage classifies the growth phase of the observed crop.
type GrowthStage string

const (
	GrowthStageSeedling     GrowthStage = "SEEDLING"
	GrowthStageVegetative   GrowthStage = "VEGETATIVE"
	GrowthStageReproductive GrowthStage = "REPRODUCTIVE"
	GrowthStageMaturity     GrowthStage = "MATURITY"
)

// DefaultGrowthStage is the fallback member for unrecognized stored values.
const DefaultGrowthStage = GrowthStageVegetative

// AllGrowthStages lists the closed set of growth stages.
var AllGrowthStages = []GrowthStage{
	GrowthStageSeedling,
	GrowthStageVegetative,
	GrowthStageReproductive,
	GrowthStageMaturity,
}

// ParseGrowthStage decodes a stored growth stage string, falling back to
// DefaultGrowthStage for unrecognized values.
func ParseGrowthStage(raw string) (GrowthStage, bool) {
	s := GrowthStage(raw)
	if s.Valid() {
		return s, true
	}
	return DefaultGrowthStage, false
}

// Valid reports whether the stage is one of the current enumerated members.
func (s GrowthStage) Valid() bool {
	switch s {
	case GrowthStageSeedling, GrowthStageVegetative, GrowthStageReproductive, GrowthStageMaturity:
		return true
	}
	return false
}

// DisplayName returns the user-facing name for the growth stage.
func (s GrowthStage) DisplayName() string {
	switch s {
	case GrowthStageSeedling:
		return "Seedling"
	case GrowthStageVegetative:
		return "Vegetative"
	case GrowthStageReproductive:
		return "Reproductive"
	case GrowthStageMaturity:
		return "Maturity"
	default:
		return string(s)
	}
}

// CropHealthRecord represents a single crop health observation.
type CropHealthRecord struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	CropType            string       `gorm:"not null" json:"crop_type"`
	HealthStatus        HealthStatus `gorm:"type:varchar(32);not null;index:idx_records_status" json:"health_status"`
	Confidence          float64      `gorm:"not null" json:"confidence"`
	GrowthStage         GrowthStage  `gorm:"type:varchar(32);not null" json:"growth_stage"`
	ImagePath           string       `json:"image_path,omitempty"`
	ImageBlob           []byte       `gorm:"type:blob" json:"-"`
	Location            string       `gorm:"index:idx_records_location" json:"location,omitempty"`
	Notes               string       `json:"notes,omitempty"`
	TreatmentApplied    string       `json:"treatment_applied,omitempty"`
	SustainabilityScore float64      `gorm:"default:0" json:"sustainability_score"`
	Timestamp           time.Time    `gorm:"not null;index:idx_records_timestamp" json:"timestamp"`
}

// TableName keeps the table name used by the v2 mobile schema.
func (CropHealthRecord) TableName() string {
	return "crop_health_records"
}

// HasImage reports whether the record carries any image representation.
func (r *CropHealthRecord) HasImage() bool {
	return r.ImagePath != "" || len(r.ImageBlob) > 0
}

// ConfidencePercent returns the confidence as a whole percentage.
func (r *CropHealthRecord) ConfidencePercent() int {
	return int(r.Confidence * 100)
}

// ConfidenceLevel returns a coarse confidence description.
func (r *CropHealthRecord) ConfidenceLevel() string {
	switch {
	case r.Confidence >= 0.8:
		return "High"
	case r.Confidence >= 0.6:
		return "Medium"
	case r.Confidence >= 0.4:
		return "Low"
	default:
		return "Very Low"
	}
}

// SustainabilityLabel returns a coarse description of the sustainability score.
func (r *CropHealthRecord) SustainabilityLabel() string {
	switch {
	case r.SustainabilityScore >= 0.8:
		return "High Sustainability"
	case r.SustainabilityScore >= 0.6:
		return "Medium Sustainability"
	case r.SustainabilityScore >= 0.4:
		return "Low Sustainability"
	default:
		return "Chemical Treatment"
	}
}

// Clamp01 limits a score to the [0,1] range.
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
