package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ufotoken/backend/internal/services/leaderboard"
)

// LeaderboardHandler serves ranked leaderboards
type LeaderboardHandler struct {
	service *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Get returns the leaderboard for the requested period
func (h *LeaderboardHandler) Get(c *gin.Context) {
	period := c.DefaultQuery("period", "all-time")
	switch period {
	case "daily", "weekly", "monthly", "all-time":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	board, err := h.service.Get(c.Request.Context(), period, limit)
	if err != nil {
		log.Printf("Leaderboard error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, board)
}
