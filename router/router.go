package router

import (
	"time"

	"github.com/LittleSteps/little-steps-backend/config"
	"github.com/LittleSteps/little-steps-backend/handlers"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config           *config.Config
	JWTValidator     middleware.Validator
	RedisClient      *redis.Client
	RateLimiter      services.RateLimiterInterface
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	MilestoneHandler *handlers.MilestoneHandler
	ResourceHandler  *handlers.ResourceHandler
	ChatHandler      *handlers.ChatHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	TipHandler       *handlers.TipHandler
	HealthHandler    *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics live outside the /api prefix.
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Public auth routes, rate limited by client IP.
		authRoutes := api.Group("/auth")
		if deps.RedisClient != nil {
			window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
			authRoutes.Use(middleware.AuthRateLimiter(deps.RedisClient, deps.Config.RateLimit.AuthRequestsPerMinute, window))
		}
		{
			authRoutes.POST("/register", deps.AuthHandler.Register)
			authRoutes.POST("/login", deps.AuthHandler.Login)
			authRoutes.POST("/refresh", deps.AuthHandler.Refresh)
		}

		// Everything else requires a valid access token.
		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTValidator))
		if deps.RateLimiter != nil {
			authed.Use(middleware.APIRateLimiter(deps.RateLimiter, deps.Config.RateLimit.APIRequestsPerMinute))
		}
		{
			authed.POST("/auth/logout", deps.AuthHandler.Logout)
			authed.GET("/auth/me", deps.AuthHandler.Me)

			userRoutes := authed.Group("/users")
			{
				userRoutes.GET("/profile", deps.UserHandler.GetProfile)
				userRoutes.PUT("/profile", deps.UserHandler.UpdateProfile)
				userRoutes.GET("/profile/details", deps.UserHandler.GetProfileDetails)
				userRoutes.PUT("/profile/details", deps.UserHandler.UpdateProfileDetails)
				userRoutes.POST("/onboarding", deps.UserHandler.Onboarding)
			}

			milestoneRoutes := authed.Group("/milestones")
			{
				milestoneRoutes.GET("", deps.MilestoneHandler.List)
				milestoneRoutes.GET("/user", deps.MilestoneHandler.ListUser)
				milestoneRoutes.PUT("/:id/complete", deps.MilestoneHandler.Complete)
				milestoneRoutes.GET("/progress", deps.MilestoneHandler.Progress)
			}

			resourceRoutes := authed.Group("/resources")
			{
				resourceRoutes.GET("", deps.ResourceHandler.List)
				resourceRoutes.GET("/search", deps.ResourceHandler.Search)
				resourceRoutes.GET("/saved", deps.ResourceHandler.ListSaved)
				resourceRoutes.GET("/:id", deps.ResourceHandler.Get)
				resourceRoutes.POST("/:id/save", deps.ResourceHandler.Save)
				resourceRoutes.DELETE("/:id/save", deps.ResourceHandler.Unsave)
			}

			chatRoutes := authed.Group("/chat")
			{
				chatRoutes.POST("/message", deps.ChatHandler.SendMessage)
				chatRoutes.GET("/history", deps.ChatHandler.History)
				chatRoutes.DELETE("/history", deps.ChatHandler.ClearHistory)
			}

			analyticsRoutes := authed.Group("/analytics")
			{
				analyticsRoutes.POST("/event", deps.AnalyticsHandler.TrackEvent)
				analyticsRoutes.GET("/progress", deps.AnalyticsHandler.WeeklyProgress)
				analyticsRoutes.GET("/insights", deps.AnalyticsHandler.Insights)
			}

			authed.GET("/tips/daily", deps.TipHandler.Daily)
		}
	}

	return r
}
