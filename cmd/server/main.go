package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/ufotoken/backend/internal/agents"
	"github.com/ufotoken/backend/internal/config"
	"github.com/ufotoken/backend/internal/database"
	"github.com/ufotoken/backend/internal/handlers"
	"github.com/ufotoken/backend/internal/middleware"
	"github.com/ufotoken/backend/internal/routes"
	"github.com/ufotoken/backend/internal/scheduler"
	"github.com/ufotoken/backend/internal/services/leaderboard"
	"github.com/ufotoken/backend/internal/services/stats"
	"github.com/ufotoken/backend/internal/store"
	"github.com/ufotoken/backend/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize database
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis client. The pipeline degrades gracefully without it:
	// leaderboards skip the cache and the scheduler skips the run lock.
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.URL,
		DB:   cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Printf("Redis unreachable, continuing without cache and run lock: %v", err)
		redisClient = nil
	}

	// Initialize stores and agents. Each randomized component gets its own
	// lock-guarded source; the scheduler goroutine and the HTTP handlers can
	// invoke the same component concurrently.
	gormStore := store.NewGormStore(db)
	evaluator := agents.NewMissionEvaluator(gormStore, gormStore, gormStore, cfg.Agents.EvaluatorBatchLimit)
	beam := agents.NewBeamAgent(gormStore, gormStore, gormStore, cfg.Agents, utils.NewRand())
	distributor := agents.NewDistributor(gormStore, gormStore, agents.NewSimulatedSettler(utils.NewRand()), cfg.Agents.ProcessorBatchLimit)

	orchestrator := agents.NewOrchestrator(
		func(ctx context.Context) (interface{}, error) { return evaluator.Run(ctx) },
		func(ctx context.Context) (interface{}, error) { return beam.Run(ctx) },
		func(ctx context.Context) (interface{}, error) { return distributor.Run(ctx) },
		cfg.Agents.BeamProbability,
		cfg.Agents.StepTimeout,
		utils.NewRand(),
	)

	// Initialize handlers
	handlerSet := routes.Handlers{
		Agents:      handlers.NewAgentHandler(evaluator, beam, distributor, orchestrator),
		Users:       handlers.NewUserHandler(db, cfg.Rewards, utils.NewRand()),
		Missions:    handlers.NewMissionHandler(db),
		Airdrops:    handlers.NewAirdropHandler(db),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboard.NewService(db, redisClient)),
		Stats:       handlers.NewStatsHandler(stats.NewService(db)),
		Health:      handlers.NewHealthHandler(db),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter := middleware.NewRateLimiter(10, 20)
	defer rateLimiter.Stop()

	router := routes.SetupRouter(handlerSet, rateLimiter)

	// Start the pipeline scheduler
	pipelineScheduler := scheduler.NewScheduler(orchestrator, redisClient, cfg.Agents.ScheduleInterval)
	if err := pipelineScheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Start server
	srv := startServer(router, cfg.Server)

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	pipelineScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// newServer builds the HTTP server with the configured timeouts
func newServer(handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
}

// startServer starts the HTTP server
func startServer(router *gin.Engine, cfg config.ServerConfig) *http.Server {
	srv := newServer(router, cfg)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Port)
	return srv
}
