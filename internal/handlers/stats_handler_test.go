package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/services/stats"
)

type stubStatsProvider struct {
	overview *stats.Overview
	err      error
}

func (s *stubStatsProvider) Overview(ctx context.Context) (*stats.Overview, error) {
	return s.overview, s.err
}

func newStatsTestRouter(h *StatsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/stats", h.Get)
	return router
}

func TestStatsGet(t *testing.T) {
	h := NewStatsHandler(&stubStatsProvider{overview: &stats.Overview{
		Users: models.UserStats{
			TotalUsers:             120,
			ActiveUsers:            40,
			TotalReferrals:         15,
			TotalMissionsCompleted: 33,
		},
		Airdrops: models.AirdropStats{
			TotalAirdrops:   200,
			TotalAmount:     31000,
			PendingAirdrops: 12,
			CompletedToday:  8,
			AverageAmount:   155,
		},
		TotalBeams:     180,
		TotalBeamValue: 27500,
		GeneratedAt:    time.Now(),
	}})
	router := newStatsTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"total_users":120`)
	assert.Contains(t, body, `"pending_airdrops":12`)
	assert.Contains(t, body, `"total_beams":180`)
	assert.Contains(t, body, `"total_beam_amount":27500`)
}

func TestStatsGetError(t *testing.T) {
	h := NewStatsHandler(&stubStatsProvider{err: fmt.Errorf("db down")})
	router := newStatsTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
