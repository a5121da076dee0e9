// simulated.go: random assessment generator with realistic score bands
package assessment

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
)

// Barangays is the fixed list of localities assessments are attributed to.
var Barangays = []string{
	"Barangay 1", "Barangay 2", "Barangay 3", "Barangay 4", "Barangay 5",
	"Poblacion", "San Jose", "Santa Maria", "San Pedro", "San Miguel",
}

// scoreBand is a half-open [Min, Min+Width) uniform sampling range.
type scoreBand struct {
	Min   float64
	Width float64
}

// Confidence bands per diagnosis. A healthy call is easier than a disease
// call, so its band sits higher and narrower.
var confidenceBands = map[model.HealthStatus]scoreBand{
	model.HealthStatusHealthy:             {0.80, 0.15},
	model.HealthStatusNutrientDeficiency:  {0.70, 0.20},
	model.HealthStatusPestDamage:          {0.65, 0.25},
	model.HealthStatusDisease:             {0.60, 0.30},
	model.HealthStatusEnvironmentalStress: {0.65, 0.25},
}

var sustainabilityBands = map[model.HealthStatus]scoreBand{
	model.HealthStatusHealthy:             {0.80, 0.20},
	model.HealthStatusNutrientDeficiency:  {0.60, 0.30},
	model.HealthStatusPestDamage:          {0.40, 0.40},
	model.HealthStatusDisease:             {0.30, 0.50},
	model.HealthStatusEnvironmentalStress: {0.50, 0.30},
}

func (b scoreBand) sample(rng *rand.Rand) float64 {
	return b.Min + rng.Float64()*b.Width
}

// SimulatedAssessor produces assessments with uniformly random diagnoses and
// per-status score bands. It never fails; a nil or undecodable image simply
// yields a record without image data.
type SimulatedAssessor struct {
	cropType string
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedAssessor creates a simulator with a time-seeded random source.
func NewSimulatedAssessor(cropType string) *SimulatedAssessor {
	if cropType == "" {
		cropType = "Rice"
	}
	return &SimulatedAssessor{
		cropType: cropType,
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// WithRand replaces the random source, for deterministic tests.
func (a *SimulatedAssessor) WithRand(rng *rand.Rand) *SimulatedAssessor {
	a.rng = rng
	return a
}

// WithClock replaces the timestamp source, for deterministic tests.
func (a *SimulatedAssessor) WithClock(now func() time.Time) *SimulatedAssessor {
	a.now = now
	return a
}

// Assess produces one simulated assessment.
func (a *SimulatedAssessor) Assess(_ context.Context, image []byte) (*model.CropHealthRecord, error) {
	a.mu.Lock()
	status := model.AllHealthStatuses[a.rng.IntN(len(model.AllHealthStatuses))]
	stage := model.AllGrowthStages[a.rng.IntN(len(model.AllGrowthStages))]
	location := Barangays[a.rng.IntN(len(Barangays))]
	confidence := confidenceBands[status].sample(a.rng)
	sustainability := sustainabilityBands[status].sample(a.rng)
	a.mu.Unlock()

	return &model.CropHealthRecord{
		CropType:            a.cropType,
		HealthStatus:        status,
		Confidence:          model.Clamp01(confidence),
		GrowthStage:         stage,
		ImageBlob:           usableImage(image),
		Location:            location,
		SustainabilityScore: model.Clamp01(sustainability),
		Timestamp:           a.now(),
	}, nil
}
