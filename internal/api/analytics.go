// analytics.go: cached per-barangay health summaries
package api

import (
	"net/http"

	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

const analyticsCacheKey = "analytics-summary"

func (c *Controller) initAnalyticsRoutes() {
	c.Group.GET("/analytics/summary", c.AnalyticsSummary)
}

// barangaySummary is the aggregate view for one locality.
type barangaySummary struct {
	Barangay            string  `json:"barangay"`
	TotalRecords        int     `json:"total_records"`
	HealthyCrops        int     `json:"healthy_crops"`
	NutrientDeficiency  int     `json:"nutrient_deficiency"`
	PestDamage          int     `json:"pest_damage"`
	Disease             int     `json:"disease"`
	EnvironmentalStress int     `json:"environmental_stress"`
	AverageConfidence   float64 `json:"average_confidence"`
}

// AnalyticsSummary aggregates all records per barangay. The result is cached
// for five minutes; pass refresh=true to bypass the cache.
func (c *Controller) AnalyticsSummary(ctx echo.Context) error {
	if ctx.QueryParam("refresh") != "true" {
		if cached, found := c.analyticsCache.Get(analyticsCacheKey); found {
			return ctx.JSON(http.StatusOK, cached)
		}
	}

	records, err := c.DS.GetAllCropHealthRecords()
	if err != nil {
		return c.HandleError(ctx, err, "failed to load records for analytics")
	}

	byBarangay := make(map[string]*barangaySummary)
	order := make([]string, 0)
	for i := range records {
		loc := records[i].Location
		if loc == "" {
			loc = "Unknown"
		}
		s, ok := byBarangay[loc]
		if !ok {
			s = &barangaySummary{Barangay: loc}
			byBarangay[loc] = s
			order = append(order, loc)
		}
		s.TotalRecords++
		s.AverageConfidence += records[i].Confidence
		switch records[i].HealthStatus {
		case model.HealthStatusHealthy:
			s.HealthyCrops++
		case model.HealthStatusNutrientDeficiency:
			s.NutrientDeficiency++
		case model.HealthStatusPestDamage:
			s.PestDamage++
		case model.HealthStatusDisease:
			s.Disease++
		case model.HealthStatusEnvironmentalStress:
			s.EnvironmentalStress++
		}
	}

	summaries := make([]barangaySummary, 0, len(order))
	for _, loc := range order {
		s := byBarangay[loc]
		if s.TotalRecords > 0 {
			s.AverageConfidence /= float64(s.TotalRecords)
		}
		summaries = append(summaries, *s)
	}

	c.analyticsCache.Set(analyticsCacheKey, summaries, cache.DefaultExpiration)
	return ctx.JSON(http.StatusOK, summaries)
}
