// Package api exposes the monitoring service over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/assessment"
	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/gamification"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/observability"
	reportsync "github.com/cvsuagritech/agrisight-go/internal/sync"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo         *echo.Echo
	Group        *echo.Group
	DS           datastore.Interface
	Settings     *conf.Settings
	Assessor     assessment.Assessor
	Gamification *gamification.Store
	Publisher    *reportsync.Publisher

	analyticsCache *cache.Cache
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// New creates the controller and registers all routes on the echo instance.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings,
	assessor assessment.Assessor, gamStore *gamification.Store,
	publisher *reportsync.Publisher, metrics *observability.Metrics) *Controller {

	c := &Controller{
		Echo:           e,
		DS:             ds,
		Settings:       settings,
		Assessor:       assessor,
		Gamification:   gamStore,
		Publisher:      publisher,
		analyticsCache: cache.New(5*time.Minute, 10*time.Minute),
		metrics:        metrics,
		logger:         logging.ForService("api"),
	}

	e.Use(middleware.Recover())
	if metrics != nil {
		e.Use(c.metricsMiddleware)
	}

	c.Group = e.Group("/api/v1")
	c.initRecordRoutes()
	c.initAnalysisRoutes()
	c.initReportRoutes()
	c.initAnalyticsRoutes()
	c.initGamificationRoutes()

	e.GET("/healthz", c.HealthCheck)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	return c
}

// HealthCheck reports liveness and a record count as a cheap readiness probe.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	count, err := c.DS.CountCropHealthRecords()
	if err != nil {
		return c.HandleError(ctx, err, "health check failed")
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"records": count,
	})
}

// metricsMiddleware records request counts and latency.
func (c *Controller) metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)
		path := ctx.Path()
		method := ctx.Request().Method
		status := ctx.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		c.metrics.HTTP.RequestsTotal.WithLabelValues(method, path, httpStatusLabel(status)).Inc()
		c.metrics.HTTP.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleError maps categorized errors to HTTP status codes and logs server
// faults.
func (c *Controller) HandleError(ctx echo.Context, err error, message string) error {
	status := http.StatusInternalServerError
	switch {
	case errors.HasCategory(err, errors.CategoryValidation),
		errors.HasCategory(err, errors.CategoryImageDecode):
		status = http.StatusBadRequest
	case errors.HasCategory(err, errors.CategoryNotFound):
		status = http.StatusNotFound
	case errors.HasCategory(err, errors.CategoryConflict),
		errors.HasCategory(err, errors.CategoryState):
		status = http.StatusConflict
	case errors.HasCategory(err, errors.CategoryMQTTConn),
		errors.HasCategory(err, errors.CategoryMQTTPublish):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		c.logger.Error(message, "error", err, "path", ctx.Path())
	} else {
		c.logger.Warn(message, "error", err, "path", ctx.Path())
	}

	return ctx.JSON(status, errorResponse{Error: err.Error(), Message: message})
}

// Shutdown stops the HTTP server gracefully.
func (c *Controller) Shutdown(ctx context.Context) error {
	return c.Echo.Shutdown(ctx)
}
