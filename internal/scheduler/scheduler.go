package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-redis/redis/v8"
	"github.com/ufotoken/backend/internal/agents"
)

const (
	runLockKey = "agents:run-all:lock"
	runLockTTL = 2 * time.Minute
)

// Scheduler periodically triggers the pipeline orchestrator. A Redis lock
// keeps overlapping runs (or multiple replicas) from processing the same
// batch twice.
type Scheduler struct {
	orchestrator *agents.Orchestrator
	redis        *redis.Client
	interval     time.Duration
	scheduler    *gocron.Scheduler
}

// NewScheduler creates a new pipeline scheduler
func NewScheduler(orchestrator *agents.Orchestrator, redisClient *redis.Client, interval time.Duration) *Scheduler {
	return &Scheduler{
		orchestrator: orchestrator,
		redis:        redisClient,
		interval:     interval,
		scheduler:    gocron.NewScheduler(time.UTC),
	}
}

// Start begins periodic orchestrator runs in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.runOnce); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	log.Printf("Scheduler: orchestrator runs every %s", s.interval)
	return nil
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// runOnce runs the orchestrator under the distributed lock
func (s *Scheduler) runOnce() {
	ctx := context.Background()

	if s.redis != nil {
		acquired, err := s.redis.SetNX(ctx, runLockKey, time.Now().Unix(), runLockTTL).Result()
		if err != nil {
			log.Printf("Scheduler: lock acquisition failed, skipping run: %v", err)
			return
		}
		if !acquired {
			log.Println("Scheduler: another run holds the lock, skipping")
			return
		}
		defer func() {
			if err := s.redis.Del(ctx, runLockKey).Err(); err != nil {
				log.Printf("Scheduler: failed to release lock: %v", err)
			}
		}()
	}

	report := s.orchestrator.Run(ctx)
	log.Printf("Scheduler: orchestration finished, success rate %.1f%%", report.SuccessRate)
}
