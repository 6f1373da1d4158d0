package controller

import (
	"net/http"
	"strconv"

	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

const maxReportDays = 365

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// Dashboard returns the back office landing counters
// GET /api/v1/admin/dashboard
func (ctrl *AnalyticsController) Dashboard(c *gin.Context) {
	dashboard, err := ctrl.analyticsService.Dashboard()
	if err != nil {
		respondServiceError(c, err, "load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// Report returns daily counters plus top doctors and recent reviews
// GET /api/v1/admin/analytics?days=30
func (ctrl *AnalyticsController) Report(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(service.DefaultReportDays)))
	if err != nil || days < 1 || days > maxReportDays {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "عدد الأيام يجب أن يكون بين 1 و 365")
		return
	}

	report, err := ctrl.analyticsService.Report(days)
	if err != nil {
		respondServiceError(c, err, "load analytics")
		return
	}

	c.JSON(http.StatusOK, report)
}
