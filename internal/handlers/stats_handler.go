package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ufotoken/backend/internal/services/stats"
)

// StatsProvider computes the platform statistics snapshot
type StatsProvider interface {
	Overview(ctx context.Context) (*stats.Overview, error)
}

// StatsHandler serves platform-wide statistics
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// Get returns the current statistics snapshot
func (h *StatsHandler) Get(c *gin.Context) {
	overview, err := h.provider.Overview(c.Request.Context())
	if err != nil {
		log.Printf("Stats error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, overview)
}
