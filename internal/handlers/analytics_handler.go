package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HeyDYF/Money-Manager/internal/services"
)

// AnalyticsHandler serves transaction reports.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSummary returns totals for the filtered transactions.
// @Summary     Transaction analytics
// @Description Income, expense, per-category and per-day totals
// @Tags        analytics
// @Produce     json
// @Param       q     query string false "Search in name and description"
// @Param       range query string false "all, day, week, month or year"
// @Success     200 {object} services.AnalyticsReport "Summary"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /analytics [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	report, err := h.analyticsService.GetSummary(c.Query("q"), c.Query("range"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
