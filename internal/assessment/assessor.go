// Package assessment produces crop health assessments from field images.
// Assessments are produced either by the built-in simulator or by an external
// classifier, selected through configuration.
package assessment

import (
	"context"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/model"
)

// Assessor turns an optional field image into an unsaved crop health record.
type Assessor interface {
	Assess(ctx context.Context, image []byte) (*model.CropHealthRecord, error)
}

// Classifier is the external model collaborator. It returns a health status
// label and a confidence in [0,1] for the given image.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (label string, confidence float64, err error)
}

// New selects the assessor implementation for the configured mode. The
// classifier argument is required only for classifier mode.
func New(settings *conf.Settings, classifier Classifier) (Assessor, error) {
	switch settings.Assessment.Mode {
	case conf.AssessmentModeSimulate, "":
		return NewSimulatedAssessor(settings.Assessment.CropType), nil
	case conf.AssessmentModeClassifier:
		if classifier == nil {
			return nil, errors.Newf("classifier mode configured but no classifier provided").
				Component("assessment").
				Category(errors.CategoryConfiguration).
				Build()
		}
		return NewClassifierAssessor(settings.Assessment.CropType, classifier), nil
	default:
		return nil, errors.Newf("unknown assessment mode: %s", settings.Assessment.Mode).
			Component("assessment").
			Category(errors.CategoryConfiguration).
			Build()
	}
}
