package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufotoken/backend/internal/agents"
)

type stubEvaluator struct {
	report *agents.EvaluationReport
	err    error
}

func (s *stubEvaluator) Run(ctx context.Context) (*agents.EvaluationReport, error) {
	return s.report, s.err
}

type stubBeam struct {
	report *agents.BeamReport
	err    error
}

func (s *stubBeam) Run(ctx context.Context) (*agents.BeamReport, error) {
	return s.report, s.err
}

type stubDistributor struct {
	report *agents.ProcessingReport
	err    error
}

func (s *stubDistributor) Run(ctx context.Context) (*agents.ProcessingReport, error) {
	return s.report, s.err
}

type stubOrchestrator struct {
	report *agents.OrchestrationReport
}

func (s *stubOrchestrator) Run(ctx context.Context) *agents.OrchestrationReport {
	return s.report
}

func newAgentTestRouter(h *AgentHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	group := router.Group("/api/agents")
	group.POST("/mission-evaluator", h.RunMissionEvaluator)
	group.POST("/reward-generator", h.RunBeamRandomizer)
	group.POST("/reward-processor", h.RunDistributor)
	group.POST("/run-all", h.RunAll)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestRunMissionEvaluator(t *testing.T) {
	h := NewAgentHandler(&stubEvaluator{report: &agents.EvaluationReport{
		Processed: 5,
		Completed: 2,
		CompletedMissions: []agents.CompletedMission{
			{MissionID: "m1", UserID: "u1", Title: "First Contact", RewardPoints: 500},
		},
	}}, nil, nil, nil)
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/mission-evaluator")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), body["processed"])
	assert.Equal(t, float64(2), body["completed"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRunMissionEvaluatorError(t *testing.T) {
	h := NewAgentHandler(&stubEvaluator{err: fmt.Errorf("db down")}, nil, nil, nil)
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/mission-evaluator")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body["error"], "Mission evaluator")
}

func TestRunBeamRandomizer(t *testing.T) {
	scheduled := time.Now().Add(30 * time.Minute)
	h := NewAgentHandler(nil, &stubBeam{report: &agents.BeamReport{
		EligibleUsers: 40,
		Beamed:        4,
		TotalAmount:   600,
		Airdrops: []agents.BeamedAirdrop{
			{ID: "a1", WalletAddress: "0xaaa", Amount: 150, ScheduledFor: &scheduled},
		},
	}}, nil, nil)
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/reward-generator")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(40), body["eligible_users"])
	assert.Equal(t, float64(4), body["beamed"])
	assert.Equal(t, float64(600), body["total_amount"])
}

func TestRunBeamRandomizerNoEligibleUsers(t *testing.T) {
	h := NewAgentHandler(nil, &stubBeam{report: &agents.BeamReport{}}, nil, nil)
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/reward-generator")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["beamed"])
	assert.Contains(t, body["message"], "No eligible users")
}

func TestRunDistributor(t *testing.T) {
	h := NewAgentHandler(nil, nil, &stubDistributor{report: &agents.ProcessingReport{
		Processed: 3,
		Total:     4,
		Airdrops: []agents.ProcessedAirdrop{
			{ID: "a1", WalletAddress: "0xaaa", Amount: 100, TransactionHash: "0xdead"},
		},
	}}, nil)
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/reward-processor")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["processed"])
	assert.Equal(t, float64(4), body["total"])
}

func TestRunDistributorEmptyQueue(t *testing.T) {
	h := NewAgentHandler(nil, nil, &stubDistributor{report: &agents.ProcessingReport{}}, nil)
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/reward-processor")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["processed"])
	assert.Contains(t, body["message"], "No pending airdrops")
}

func TestRunAll(t *testing.T) {
	h := NewAgentHandler(nil, nil, nil, &stubOrchestrator{report: &agents.OrchestrationReport{
		Timestamp:        time.Now(),
		SuccessRate:      100,
		ExecutedAgents:   3,
		SuccessfulAgents: 3,
		Agents: map[string]agents.StepResult{
			agents.StepMissionEvaluator: {Status: agents.StepStatusSuccess},
			agents.StepBeamRandomizer:   {Status: agents.StepStatusSuccess},
			agents.StepDistributor:      {Status: agents.StepStatusSuccess},
		},
	}})
	router := newAgentTestRouter(h)

	code, body := doJSON(t, router, http.MethodPost, "/api/agents/run-all")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(100), body["success_rate"])
	assert.Equal(t, float64(3), body["executed_agents"])

	steps, ok := body["agents"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, steps, 3)
}

func TestAgentRoutesRejectGet(t *testing.T) {
	h := NewAgentHandler(&stubEvaluator{report: &agents.EvaluationReport{}}, nil, nil, nil)
	router := newAgentTestRouter(h)

	code, _ := doJSON(t, router, http.MethodGet, "/api/agents/mission-evaluator")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}
