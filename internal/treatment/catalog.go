// Package treatment derives remediation recommendations from crop health
// observations using a fixed catalog of interventions for Philippine rice
// farming.
package treatment

import (
	"github.com/cvsuagritech/agrisight-go/internal/model"
)

// catalogEntry is one intervention template. Entries are instantiated per
// record by the generator; Gate, when non-zero, is the exclusive confidence
// threshold a diagnosis must exceed before the entry applies.
type catalogEntry struct {
	Type                model.TreatmentType
	Title               string
	Description         string
	Instructions        string
	SustainabilityLevel model.SustainabilityLevel
	Effectiveness       float64
	Cost                float64
	TimeToApply         string
	ActiveIngredients   string
	SafetyNotes         string
	Gate                float64
}

// catalog maps each diagnosis to its interventions in presentation order:
// sustainable options first, chemical treatments last and gated on
// diagnostic confidence.
var catalog = map[model.HealthStatus][]catalogEntry{
	model.HealthStatusHealthy: {
		{
			Type:                model.TreatmentTypePrevention,
			Title:               "Maintain Soil Health",
			Description:         "Continue current practices and monitor regularly",
			Instructions:        "Apply organic compost monthly, maintain proper irrigation, and monitor for early signs of issues.",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.85,
			Cost:                0,
			TimeToApply:         "Monthly",
		},
	},
	model.HealthStatusNutrientDeficiency: {
		{
			Type:                model.TreatmentTypeCultural,
			Title:               "Soil Amendment",
			Description:         "Improve soil nutrient content naturally",
			Instructions:        "Apply organic compost and green manure. Test soil pH and adjust if needed.",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.75,
			Cost:                50,
			TimeToApply:         "2-3 weeks",
		},
		{
			Type:                model.TreatmentTypeBiological,
			Title:               "Biofertilizer Application",
			Description:         "Use beneficial microorganisms to improve nutrient uptake",
			Instructions:        "Apply nitrogen-fixing bacteria and mycorrhizal fungi to enhance root nutrient absorption.",
			SustainabilityLevel: model.SustainabilityMedium,
			Effectiveness:       0.80,
			Cost:                100,
			TimeToApply:         "1-2 weeks",
		},
	},
	model.HealthStatusPestDamage: {
		{
			Type:                model.TreatmentTypeBiological,
			Title:               "Beneficial Insects",
			Description:         "Introduce natural predators to control pest populations",
			Instructions:        "Release ladybugs, lacewings, or parasitic wasps to control pest populations naturally.",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.70,
			Cost:                80,
			TimeToApply:         "1 week",
		},
		{
			Type:                model.TreatmentTypeCultural,
			Title:               "Crop Rotation & Sanitation",
			Description:         "Remove infected plants and improve field hygiene",
			Instructions:        "Remove and destroy infected plant material. Implement crop rotation to break pest cycles.",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.65,
			Cost:                20,
			TimeToApply:         "Immediate",
		},
		{
			Type:                model.TreatmentTypeChemical,
			Title:               "Targeted Pesticide",
			Description:         "Apply specific pesticide for identified pest",
			Instructions:        "Apply neem oil or pyrethrin-based pesticide. Follow safety guidelines and apply during early morning.",
			SustainabilityLevel: model.SustainabilityLow,
			Effectiveness:       0.90,
			Cost:                200,
			TimeToApply:         "3-5 days",
			ActiveIngredients:   "Neem oil, Pyrethrin",
			SafetyNotes:         "Wear protective equipment. Avoid application during flowering. Follow pre-harvest intervals.",
			Gate:                0.80,
		},
	},
	model.HealthStatusDisease: {
		{
			Type:                model.TreatmentTypeCultural,
			Title:               "Disease Management",
			Description:         "Improve air circulation and reduce humidity",
			Instructions:        "Prune affected areas, improve spacing between plants, and ensure proper drainage.",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.60,
			Cost:                30,
			TimeToApply:         "Immediate",
		},
		{
			Type:                model.TreatmentTypeBiological,
			Title:               "Biological Fungicide",
			Description:         "Use beneficial microorganisms to combat disease",
			Instructions:        "Apply Bacillus subtilis or Trichoderma-based biological fungicide to suppress disease-causing pathogens.",
			SustainabilityLevel: model.SustainabilityMedium,
			Effectiveness:       0.75,
			Cost:                120,
			TimeToApply:         "1 week",
		},
		{
			Type:                model.TreatmentTypeChemical,
			Title:               "Fungicide Treatment",
			Description:         "Apply targeted fungicide for disease control",
			Instructions:        "Apply copper-based or systemic fungicide. Follow label instructions and safety precautions.",
			SustainabilityLevel: model.SustainabilityLow,
			Effectiveness:       0.85,
			Cost:                150,
			TimeToApply:         "5-7 days",
			ActiveIngredients:   "Copper hydroxide, Azoxystrobin",
			SafetyNotes:         "Wear protective equipment. Avoid application during hot weather. Follow re-entry intervals.",
			Gate:                0.75,
		},
	},
	model.HealthStatusEnvironmentalStress: {
		{
			Type:                model.TreatmentTypeCultural,
			Title:               "Environmental Management",
			Description:         "Adjust growing conditions to reduce stress",
			Instructions:        "Improve irrigation scheduling, provide shade during extreme heat, and ensure proper soil moisture.",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.70,
			Cost:                40,
			TimeToApply:         "Immediate",
		},
		{
			Type:                model.TreatmentTypeBiological,
			Title:               "Stress Relief Treatment",
			Description:         "Apply plant growth regulators and stress-relief compounds",
			Instructions:        "Apply seaweed extract or humic acid to help plants cope with environmental stress.",
			SustainabilityLevel: model.SustainabilityMedium,
			Effectiveness:       0.65,
			Cost:                90,
			TimeToApply:         "1-2 weeks",
		},
	},
}
