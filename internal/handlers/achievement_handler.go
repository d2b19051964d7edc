package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HeyDYF/Money-Manager/internal/services"
)

// AchievementHandler serves the achievement catalog.
type AchievementHandler struct {
	ledgerService services.LedgerServicer
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(ledgerService services.LedgerServicer) *AchievementHandler {
	return &AchievementHandler{ledgerService: ledgerService}
}

// GetAchievements lists every achievement with its unlock flag.
// @Summary     List achievements
// @Tags        achievements
// @Produce     json
// @Success     200 {array} services.AchievementStatus "Achievements"
// @Router      /achievements [get]
func (h *AchievementHandler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": h.ledgerService.GetAchievements()})
}
