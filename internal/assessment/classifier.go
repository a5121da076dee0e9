// classifier.go: assessment backed by an external classification model
package assessment

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/model"
)

// ClassifierAssessor delegates the diagnosis to an external classifier. The
// classifier provides status and confidence; growth stage, locality and
// sustainability are filled in the same way the simulator fills them, since
// the model does not predict those.
type ClassifierAssessor struct {
	cropType   string
	classifier Classifier
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifierAssessor wraps the given classifier.
func NewClassifierAssessor(cropType string, classifier Classifier) *ClassifierAssessor {
	if cropType == "" {
		cropType = "Rice"
	}
	return &ClassifierAssessor{
		cropType:   cropType,
		classifier: classifier,
		now:        time.Now,
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1)),
	}
}

// WithRand replaces the random source, for deterministic tests.
func (a *ClassifierAssessor) WithRand(rng *rand.Rand) *ClassifierAssessor {
	a.rng = rng
	return a
}

// Assess classifies the image and assembles a record around the result. An
// unrecognized label from the classifier is logged and mapped to the default
// status rather than failing the assessment.
func (a *ClassifierAssessor) Assess(ctx context.Context, image []byte) (*model.CropHealthRecord, error) {
	label, confidence, err := a.classifier.Classify(ctx, image)
	if err != nil {
		return nil, errors.New(err).
			Component("assessment").
			Category(errors.CategoryState).
			Context("operation", "classify").
			Build()
	}

	status, ok := model.ParseHealthStatus(label)
	if !ok {
		logging.ForService("assessment").Warn("classifier returned unrecognized label, using default status",
			"label", label, "fallback", string(status))
	}

	a.mu.Lock()
	stage := model.AllGrowthStages[a.rng.IntN(len(model.AllGrowthStages))]
	location := Barangays[a.rng.IntN(len(Barangays))]
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
