// records.go: CRUD over crop health records
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/labstack/echo/v4"
)

func (c *Controller) initRecordRoutes() {
	c.Group.GET("/records", c.ListRecords)
	c.Group.GET("/records/:id", c.GetRecord)
	c.Group.PUT("/records/:id", c.UpdateRecord)
	c.Group.DELETE("/records/:id", c.DeleteRecord)
	c.Group.DELETE("/records", c.DeleteAllRecords)
	c.Group.GET("/records/:id/recommendations", c.ListRecommendations)
	c.Group.POST("/recommendations/:id/apply", c.ApplyRecommendation)
}

// ListRecords returns all records, optionally filtered by location and a
// "since" RFC3339 timestamp.
func (c *Controller) ListRecords(ctx echo.Context) error {
	location := ctx.QueryParam("location")
	if location != "" {
		var since time.Time
		if raw := ctx.QueryParam("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, errorResponse{
					Error: err.Error(), Message: "invalid since parameter, expected RFC3339",
				})
			}
			since = parsed
		}
		records, err := c.DS.GetCropHealthRecordsByLocation(location, since)
		if err != nil {
			return c.HandleError(ctx, err, "failed to list records by location")
		}
		return ctx.JSON(http.StatusOK, records)
	}

	records, err := c.DS.GetAllCropHealthRecords()
	if err != nil {
		return c.HandleError(ctx, err, "failed to list records")
	}
	return ctx.JSON(http.StatusOK, records)
}

// GetRecord returns one record by id.
func (c *Controller) GetRecord(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	record, err := c.DS.GetCropHealthRecord(id)
	if err != nil {
		return c.HandleError(ctx, err, "failed to load record")
	}
	if record == nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "record not found", Message: "no such record"})
	}
	return ctx.JSON(http.StatusOK, record)
}

// UpdateRecord overwrites a record in full.
func (c *Controller) UpdateRecord(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var record model.CropHealthRecord
	if err := ctx.Bind(&record); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Message: "invalid record payload"})
	}
	record.ID = id

	updated, err := c.DS.UpdateCropHealthRecord(&record)
	if err != nil {
		return c.HandleError(ctx, err, "failed to update record")
	}
	if !updated {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "record not found", Message: "no such record"})
	}
	return ctx.JSON(http.StatusOK, record)
}

// DeleteRecord removes one record.
func (c *Controller) DeleteRecord(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	deleted, err := c.DS.DeleteCropHealthRecord(id)
	if err != nil {
		return c.HandleError(ctx, err, "failed to delete record")
	}
	if !deleted {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "record not found", Message: "no such record"})
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteAllRecords clears the record table and reports how many rows went.
func (c *Controller) DeleteAllRecords(ctx echo.Context) error {
	count, err := c.DS.DeleteAllCropHealthRecords()
	if err != nil {
		return c.HandleError(ctx, err, "failed to delete records")
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"deleted": count})
}

// ListRecommendations returns the recommendations derived for a record.
func (c *Controller) ListRecommendations(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}
	recs, err := c.DS.GetTreatmentRecommendationsByRecordID(id)
	if err != nil {
		return c.HandleError(ctx, err, "failed to list recommendations")
	}
	return ctx.JSON(http.StatusOK, recs)
}

// applyRequest carries the optional outcome text for an applied treatment.
type applyRequest struct {
	Results string `json:"results"`
}

// ApplyRecommendation flips a recommendation to applied, once.
func (c *Controller) ApplyRecommendation(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Message: "invalid request payload"})
	}

	applied, err := c.DS.MarkTreatmentApplied(id, time.Now(), req.Results)
	if err != nil {
		return c.HandleError(ctx, err, "failed to apply recommendation")
	}
	if !applied {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Error: "recommendation missing or already applied", Message: "nothing to apply",
		})
	}
	return ctx.NoContent(http.StatusNoContent)
}

func parseID(ctx echo.Context) (uint, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id: "+raw)
	}
	return uint(id), nil
}
