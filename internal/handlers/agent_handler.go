package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufotoken/backend/internal/agents"
)

// MissionEvaluator runs mission progress evaluation once
type MissionEvaluator interface {
	Run(ctx context.Context) (*agents.EvaluationReport, error)
}

// BeamAgent runs random reward generation once
type BeamAgent interface {
	Run(ctx context.Context) (*agents.BeamReport, error)
}

// Distributor runs pending airdrop settlement once
type Distributor interface {
	Run(ctx context.Context) (*agents.ProcessingReport, error)
}

// Orchestrator runs the full pipeline once
type Orchestrator interface {
	Run(ctx context.Context) *agents.OrchestrationReport
}

// AgentHandler exposes the reward pipeline agents over HTTP so an external
// cron can trigger them
type AgentHandler struct {
	evaluator    MissionEvaluator
	beam         BeamAgent
	distributor  Distributor
	orchestrator Orchestrator
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(evaluator MissionEvaluator, beam BeamAgent, distributor Distributor, orchestrator Orchestrator) *AgentHandler {
	return &AgentHandler{
		evaluator:    evaluator,
		beam:         beam,
		distributor:  distributor,
		orchestrator: orchestrator,
	}
}

// RunMissionEvaluator runs the mission evaluator once
func (h *AgentHandler) RunMissionEvaluator(c *gin.Context) {
	report, err := h.evaluator.Run(c.Request.Context())
	if err != nil {
		log.Printf("Mission evaluator failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mission evaluator execution failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Mission processing completed",
		"processed":          report.Processed,
		"completed":          report.Completed,
		"completed_missions": report.CompletedMissions,
		"timestamp":          time.Now().UTC(),
	})
}

// RunBeamRandomizer runs the beam reward generator once
func (h *AgentHandler) RunBeamRandomizer(c *gin.Context) {
	report, err := h.beam.Run(c.Request.Context())
	if err != nil {
		log.Printf("Beam randomizer failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Beam agent execution failed"})
		return
	}

	if report.EligibleUsers == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":   "No eligible users for beam airdrops",
			"beamed":    0,
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "UFO Beam Technology activated!",
		"eligible_users": report.EligibleUsers,
		"beamed":         report.Beamed,
		"total_amount":   report.TotalAmount,
		"airdrops":       report.Airdrops,
		"timestamp":      time.Now().UTC(),
	})
}

// RunDistributor runs the airdrop distributor once
func (h *AgentHandler) RunDistributor(c *gin.Context) {
	report, err := h.distributor.Run(c.Request.Context())
	if err != nil {
		log.Printf("Airdrop distributor failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Airdrop agent execution failed"})
		return
	}

	if report.Total == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":   "No pending airdrops to process",
			"processed": 0,
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Airdrop processing completed",
		"processed": report.Processed,
		"total":     report.Total,
		"airdrops":  report.Airdrops,
		"timestamp": time.Now().UTC(),
	})
}

// RunAll runs every pipeline agent in sequence
func (h *AgentHandler) RunAll(c *gin.Context) {
	report := h.orchestrator.Run(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message":           "All agents execution completed",
		"success_rate":      report.SuccessRate,
		"executed_agents":   report.ExecutedAgents,
		"successful_agents": report.SuccessfulAgents,
		"agents":            report.Agents,
		"timestamp":         report.Timestamp,
	})
}
