// reports.go: report generation, listing and sync
package api

import (
	"net/http"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/cvsuagritech/agrisight-go/internal/report"
	"github.com/labstack/echo/v4"
)

func (c *Controller) initReportRoutes() {
	c.Group.GET("/reports", c.ListReports)
	c.Group.POST("/reports", c.GenerateReport)
	c.Group.POST("/reports/sync", c.SyncReports)
}

// ListReports returns all reports, newest first.
func (c *Controller) ListReports(ctx echo.Context) error {
	reports, err := c.DS.GetAllLGUReports()
	if err != nil {
		return c.HandleError(ctx, err, "failed to list reports")
	}
	return ctx.JSON(http.StatusOK, reports)
}

// generateReportRequest selects the locality and window for a new report.
type generateReportRequest struct {
	Barangay   string `json:"barangay"`
	ReportType string `json:"report_type"`
	SinceDays  int    `json:"since_days"`
}

// GenerateReport builds and persists an aggregate report over the barangay's
// recent records.
func (c *Controller) GenerateReport(ctx echo.Context) error {
	var req generateReportRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Message: "invalid request payload"})
	}
	if req.Barangay == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "barangay is required", Message: "invalid request payload"})
	}

	reportType, ok := model.ParseReportType(req.ReportType)
	if req.ReportType == "" {
		reportType = model.ReportTypeWeekly
	} else if !ok {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "unknown report type: " + req.ReportType, Message: "invalid request payload"})
	}

	var since time.Time
	if req.SinceDays > 0 {
		since = time.Now().AddDate(0, 0, -req.SinceDays)
	}

	records, err := c.DS.GetCropHealthRecordsByLocation(req.Barangay, since)
	if err != nil {
		return c.HandleError(ctx, err, "failed to load records for report")
	}

	rep := report.Build(records, req.Barangay, reportType, c.Settings.Report.GeneratedBy)
	id, err := c.DS.SaveLGUReport(rep)
	if err != nil {
		return c.HandleError(ctx, err, "failed to save report")
	}
	rep.ID = id

	c.logger.Info("report generated",
		"report_id", id,
		"barangay", req.Barangay,
		"risk", string(rep.RiskLevel),
		"records", rep.TotalRecords)

	return ctx.JSON(http.StatusCreated, rep)
}

// SyncReports pushes pending reports to the LGU broker.
func (c *Controller) SyncReports(ctx echo.Context) error {
	if c.Publisher == nil {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Error: "sync is not configured", Message: "enable sync.mqtt in the configuration",
		})
	}
	published, err := c.Publisher.PublishPending(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "report sync failed")
	}
	return ctx.JSON(http.StatusOK, map[string]int{"published": published})
}
