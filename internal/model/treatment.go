// treatment.go: treatment recommendation data model.
package model

import (
	"time"
)

// TreatmentType classifies the intervention approach.
type TreatmentType string

const (
	TreatmentTypeCultural   TreatmentType = "CULTURAL"
	TreatmentTypeBiological TreatmentType = "BIOLOGICAL"
	TreatmentTypeChemical   TreatmentType = "CHEMICAL"
	TreatmentTypePrevention TreatmentType = "PREVENTION"
)

// DefaultTreatmentType is the fallback member for unrecognized stored values.
// Cultural methods are the safest interpretation of an unknown treatment.
const DefaultTreatmentType = TreatmentTypeCultural

// ParseTreatmentType decodes a stored treatment type string.
func ParseTreatmentType(raw string) (TreatmentType, bool) {
	t := TreatmentType(raw)
	if t.Valid() {
		return t, true
	}
	return DefaultTreatmentType, false
}

// Valid reports whether the type is one of the current enumerated members.
func (t TreatmentType) Valid() bool {
	switch t {
	case TreatmentTypeCultural, TreatmentTypeBiological, TreatmentTypeChemical, TreatmentTypePrevention:
		return true
	}
	return false
}

// DisplayName returns the user-facing name for the treatment type.
func (t TreatmentType) DisplayName() string {
	switch t {
	case TreatmentTypeCultural:
		return "Cultural Methods"
	case TreatmentTypeBiological:
		return "Biological Control"
	case TreatmentTypeChemical:
		return "Chemical Treatment"
	case TreatmentTypePrevention:
		return "Prevention"
	default:
		return string(t)
	}
}

// SustainabilityLevel grades a treatment by environmental impact.
type SustainabilityLevel string

const (
	SustainabilityHigh     SustainabilityLevel = "HIGH"
	SustainabilityMedium   SustainabilityLevel = "MEDIUM"
	SustainabilityLow      SustainabilityLevel = "LOW"
	SustainabilityChemical SustainabilityLevel = "CHEMICAL"
)

// DefaultSustainabilityLevel is the fallback member for unrecognized stored values.
const DefaultSustainabilityLevel = SustainabilityMedium

// ParseSustainabilityLevel decodes a stored sustainability level string.
func ParseSustainabilityLevel(raw string) (SustainabilityLevel, bool) {
	l := SustainabilityLevel(raw)
	if l.Valid() {
		return l, true
	}
	return DefaultSustainabilityLevel, false
}

// Valid reports whether the level is one of the current enumerated members.
func (l SustainabilityLevel) Valid() bool {
	switch l {
	case SustainabilityHigh, SustainabilityMedium, SustainabilityLow, SustainabilityChemical:
		return true
	}
	return false
}

// DisplayName returns the user-facing name for the sustainability level.
func (l SustainabilityLevel) DisplayName() string {
	switch l {
	case SustainabilityHigh:
		return "High Sustainability"
	case SustainabilityMedium:
		return "Medium Sustainability"
	case SustainabilityLow:
		return "Low Sustainability"
	case SustainabilityChemical:
		return "Chemical Treatment"
	default:
		return string(l)
	}
}

// TreatmentRecommendation is one candidate remediation tied to a crop health record.
// The record reference follows convention only; the store does not enforce it.
type TreatmentRecommendation struct {
	ID                  uint                `gorm:"primaryKey" json:"id"`
	CropHealthRecordID  uint                `gorm:"not null;index:idx_recommendations_record" json:"crop_health_record_id"`
	TreatmentType       TreatmentType       `gorm:"type:varchar(32);not null" json:"treatment_type"`
	Title               string              `gorm:"not null" json:"title"`
	Description         string              `gorm:"not null" json:"description"`
	Instructions        string              `gorm:"not null" json:"instructions"`
	SustainabilityLevel SustainabilityLevel `gorm:"type:varchar(32);not null" json:"sustainability_level"`
	Effectiveness       float64             `gorm:"not null" json:"effectiveness"`
	Cost                float64             `gorm:"not null" json:"cost"`
	TimeToApply         string              `gorm:"not null" json:"time_to_apply"`
	ActiveIngredients   string              `json:"active_ingredients,omitempty"`
	SafetyNotes         string              `json:"safety_notes,omitempty"`
	Applied             bool                `gorm:"default:false" json:"applied"`
	AppliedAt           *time.Time          `json:"applied_at,omitempty"`
	Results             string              `json:"results,omitempty"`
	Timestamp           time.Time           `gorm:"not null" json:"timestamp"`
}

// TableName keeps the table name used by the v2 mobile schema.
func (TreatmentRecommendation) TableName() string {
	return "treatment_recommendations"
}

// EffectivenessPercent returns the effectiveness as a whole percentage.
func (t *TreatmentRecommendation) EffectivenessPercent() int {
	return int(t.Effectiveness * 100)
}

// CostLabel returns a coarse cost description.
func (t *TreatmentRecommendation) CostLabel() string {
	switch {
	case t.Cost == 0:
		return "Free"
	case t.Cost < 100:
		return "Low Cost"
	case t.Cost < 500:
		return "Medium Cost"
	default:
		return "High Cost"
	}
}
