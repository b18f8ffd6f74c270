// controller/analytics_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harborworks/causeway-api/middleware"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
)

type AnalyticsController struct {
	analyticsService service.IAnalyticsService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// RegisterRoutes registers the API routes for workflow analytics
func (ac *AnalyticsController) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/templates/:id", middleware.RequireScope(model.ScopeAnalyticsRead), ac.TemplateStats)
		analytics.GET("/daily", middleware.RequireScope(model.ScopeAnalyticsRead), ac.DailyStats)
	}
}

// TemplateStats endpoint
func (ac *AnalyticsController) TemplateStats(c *gin.Context) {
	stats, err := ac.analyticsService.TemplateStats(c.Request.Context(), util.GetOrgID(c), c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to read template stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// DailyStats endpoint. Defaults to today when no date is given.
func (ac *AnalyticsController) DailyStats(c *gin.Context) {
	day := time.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
		day = parsed
	}

	counters, err := ac.analyticsService.DailyStats(c.Request.Context(), util.GetOrgID(c), day)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to read daily stats", err)
		return
	}

	c.JSON(http.StatusOK, counters)
}
