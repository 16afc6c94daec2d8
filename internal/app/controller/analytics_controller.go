package controller

import (
	"net/http"

	"github.com/beautique/beautique-backend/internal/app/service"
	apperrors "github.com/beautique/beautique-backend/internal/errors"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// Dashboard returns the admin dashboard summary
// GET /api/v1/admin/analytics/dashboard
func (ctrl *AnalyticsController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	metrics, err := ctrl.analyticsService.DashboardMetrics()
	if err != nil {
		log.Error("Failed to compute dashboard metrics", err, nil)
		apperrors.InternalError(c, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, metrics)
}
