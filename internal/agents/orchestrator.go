package agents

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// Step status values reported by the orchestrator
const (
	StepStatusSuccess = "success"
	StepStatusFailed  = "failed"
	StepStatusSkipped = "skipped"
)

// Agent step names used as keys in the orchestration report
const (
	StepMissionEvaluator = "mission_evaluator"
	StepBeamRandomizer   = "beam_randomizer"
	StepDistributor      = "airdrop_distributor"
)

// StepFunc runs one pipeline step and returns its report
type StepFunc func(ctx context.Context) (interface{}, error)

// StepResult records the outcome of one orchestrated step
type StepResult struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// OrchestrationReport aggregates per-step outcomes for one run
type OrchestrationReport struct {
	Timestamp        time.Time             `json:"timestamp"`
	SuccessRate      float64               `json:"success_rate"`
	ExecutedAgents   int                   `json:"executed_agents"`
	SuccessfulAgents int                   `json:"successful_agents"`
	Agents           map[string]StepResult `json:"agents"`
}

// Orchestrator runs the pipeline agents in a fixed sequence, tolerating
// independent failure of each step
type Orchestrator struct {
	evaluator       StepFunc
	beam            StepFunc
	distributor     StepFunc
	beamProbability float64
	stepTimeout     time.Duration
	rng             *rand.Rand
	now             func() time.Time
}

// NewOrchestrator creates a new orchestrator over the three pipeline steps
func NewOrchestrator(evaluator, beam, distributor StepFunc, beamProbability float64, stepTimeout time.Duration, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		evaluator:       evaluator,
		beam:            beam,
		distributor:     distributor,
		beamProbability: beamProbability,
		stepTimeout:     stepTimeout,
		rng:             rng,
		now:             time.Now,
	}
}

// Run invokes the evaluator, then (probabilistically) the beam randomizer,
// then the distributor. A failed step is recorded and never prevents later
// steps from running; the success rate counts only non-skipped steps.
func (o *Orchestrator) Run(ctx context.Context) *OrchestrationReport {
	report := &OrchestrationReport{
		Timestamp: o.now(),
		Agents:    make(map[string]StepResult),
	}

	log.Println("Orchestrator: running mission evaluator...")
	report.Agents[StepMissionEvaluator] = o.runStep(ctx, o.evaluator)

	if o.rng.Float64() < o.beamProbability {
		log.Println("Orchestrator: running beam randomizer...")
		report.Agents[StepBeamRandomizer] = o.runStep(ctx, o.beam)
	} else {
		report.Agents[StepBeamRandomizer] = StepResult{
			Status: StepStatusSkipped,
			Reason: "random selection - not triggered this time",
		}
	}

	log.Println("Orchestrator: running airdrop distributor...")
	report.Agents[StepDistributor] = o.runStep(ctx, o.distributor)

	var attempted, succeeded int
	for _, result := range report.Agents {
		if result.Status == StepStatusSkipped {
			continue
		}
		attempted++
		if result.Status == StepStatusSuccess {
			succeeded++
		}
	}
	report.ExecutedAgents = attempted
	report.SuccessfulAgents = succeeded
	if attempted > 0 {
		report.SuccessRate = float64(succeeded) / float64(attempted) * 100
	}

	log.Printf("Orchestrator: %d/%d agents succeeded", succeeded, attempted)
	return report
}

// runStep executes one step under the configured timeout, converting errors
// and panics into a failed step result
func (o *Orchestrator) runStep(ctx context.Context, step StepFunc) (result StepResult) {
	stepCtx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result = StepResult{Status: StepStatusFailed, Error: fmt.Sprintf("panic: %v", r)}
		}
	}()

	data, err := step(stepCtx)
	if err != nil {
		return StepResult{Status: StepStatusFailed, Error: err.Error()}
	}
	return StepResult{Status: StepStatusSuccess, Data: data}
}
