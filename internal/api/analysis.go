// analysis.go: image upload, assessment and recommendation derivation
package api

import (
	"io"
	"net/http"

	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/cvsuagritech/agrisight-go/internal/treatment"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes caps field photo uploads; phone photos comfortably fit.
const maxUploadBytes = 10 << 20

func (c *Controller) initAnalysisRoutes() {
	c.Group.POST("/analyses", c.Analyze)
}

// analysisResponse bundles the persisted record with its derived
// recommendations.
type analysisResponse struct {
	Record          *model.CropHealthRecord         `json:"record"`
	Recommendations []model.TreatmentRecommendation `json:"recommendations"`
}

// Analyze accepts an optional multipart "image" file, runs the assessment,
// persists the record and its recommendations, and returns both. A missing or
// undecodable image still produces an assessment; recommendation persistence
// failure is reported but leaves the record in place, since recommendations
// can be regenerated from it.
func (c *Controller) Analyze(ctx echo.Context) error {
	image, err := readUploadedImage(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Message: "failed to read image upload"})
	}

	record, err := c.Assessor.Assess(ctx.Request().Context(), image)
	if err != nil {
		return c.HandleError(ctx, err, "assessment failed")
	}
	if notes := ctx.FormValue("notes"); notes != "" {
		record.Notes = notes
	}
	if location := ctx.FormValue("location"); location != "" {
		record.Location = location
	}

	id, err := c.DS.SaveCropHealthRecord(record)
	if err != nil {
		return c.HandleError(ctx, err, "failed to save record")
	}
	record.ID = id

	recs := treatment.Recommend(record)
	if err := c.DS.SaveTreatmentRecommendations(recs); err != nil {
		return c.HandleError(ctx, err, "record saved but recommendations could not be persisted")
	}

	c.logger.Info("analysis complete",
		"record_id", id,
		"status", string(record.HealthStatus),
		"confidence", record.Confidence,
		"recommendations", len(recs))

	return ctx.JSON(http.StatusCreated, analysisResponse{Record: record, Recommendations: recs})
}

// readUploadedImage returns the bytes of the optional "image" form file, nil
// when the field is absent.
func readUploadedImage(ctx echo.Context) ([]byte, error) {
	fh, err := ctx.FormFile("image")
	if err != nil {
		// Absent file is fine; the simulator does not need one.
		return nil, nil
	}
	if fh.Size > maxUploadBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}
