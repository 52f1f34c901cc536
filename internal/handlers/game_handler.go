package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tap-game/internal/services"
)

// GameHandler handles tap and wheel endpoints
type GameHandler struct {
	tapService   *services.TapService
	wheelService *services.WheelService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(tapService *services.TapService, wheelService *services.WheelService) *GameHandler {
	return &GameHandler{
		tapService:   tapService,
		wheelService: wheelService,
	}
}

type tapRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Tap handles POST /api/tap
func (h *GameHandler) Tap(c *gin.Context) {
	var req tapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.tapService.Tap(c.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrNoEnergy):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No energy remaining"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process tap"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// LastSpin handles GET /api/wheel/last-spin/:userId
func (h *GameHandler) LastSpin(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	last, err := h.wheelService.LastSpin(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load spin state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lastSpin": last})
}

type spinRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Spin handles POST /api/wheel/spin
func (h *GameHandler) Spin(c *gin.Context) {
	var req spinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.wheelService.Spin(c.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrSpinCooldown):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Daily spin already used"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to spin the wheel"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// SpinHistory handles GET /api/wheel/history/:userId
func (h *GameHandler) SpinHistory(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	spins, err := h.wheelService.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load spin history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"spins": spins})
}

func parseUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("userId")
	if raw == "" {
		raw = c.Param("id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}
