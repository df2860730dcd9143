package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ufotoken/backend/internal/handlers"
	"github.com/ufotoken/backend/internal/middleware"
)

// Handlers bundles every handler the router needs
type Handlers struct {
	Agents      *handlers.AgentHandler
	Users       *handlers.UserHandler
	Missions    *handlers.MissionHandler
	Airdrops    *handlers.AirdropHandler
	Leaderboard *handlers.LeaderboardHandler
	Stats       *handlers.StatsHandler
	Health      *handlers.HealthHandler
}

// SetupRouter builds the gin engine with all routes and middleware
func SetupRouter(h Handlers, rateLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	// Wrong-method requests get 405 instead of 404
	router.HandleMethodNotAllowed = true

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware())
	}

	router.GET("/api/health", h.Health.Check)

	// Pipeline agents, POST only; an external cron may trigger these
	agentGroup := router.Group("/api/agents")
	{
		agentGroup.POST("/mission-evaluator", h.Agents.RunMissionEvaluator)
		agentGroup.POST("/reward-generator", h.Agents.RunBeamRandomizer)
		agentGroup.POST("/reward-processor", h.Agents.RunDistributor)
		agentGroup.POST("/run-all", h.Agents.RunAll)
	}

	userGroup := router.Group("/api/users")
	{
		userGroup.POST("/register", h.Users.Register)
		userGroup.GET("/:walletAddress", h.Users.GetByWallet)
		userGroup.PATCH("/:walletAddress", h.Users.UpdateByWallet)
	}

	missionGroup := router.Group("/api/missions")
	{
		missionGroup.GET("", h.Missions.List)
		missionGroup.POST("", h.Missions.Create)
		missionGroup.POST("/participate", h.Missions.Participate)
	}

	airdropGroup := router.Group("/api/airdrops")
	{
		airdropGroup.GET("", h.Airdrops.List)
		airdropGroup.POST("", h.Airdrops.Create)
	}

	router.GET("/api/leaderboard", h.Leaderboard.Get)
	router.GET("/api/stats", h.Stats.Get)

	return router
}
