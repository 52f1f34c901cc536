package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tap-game/internal/services"
)

// SettingsHandler handles game settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings := h.settingsService.Get()
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PATCH /api/settings (admin)
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var patch services.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

type energySettingsRequest struct {
	RegenAmount     *int `json:"regenAmount" binding:"required"`
	IntervalSeconds *int `json:"intervalSeconds" binding:"required"`
}

// UpdateEnergySettings handles POST /api/admin/energy-settings
func (h *SettingsHandler) UpdateEnergySettings(c *gin.Context) {
	var req energySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.settingsService.UpdateEnergySettings(c.Request.Context(), *req.RegenAmount, *req.IntervalSeconds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Energy settings updated",
	})
}
