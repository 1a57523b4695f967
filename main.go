package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LittleSteps/little-steps-backend/config"
	"github.com/LittleSteps/little-steps-backend/db"
	"github.com/LittleSteps/little-steps-backend/handlers"
	"github.com/LittleSteps/little-steps-backend/internal/auth"
	"github.com/LittleSteps/little-steps-backend/internal/store/postgres"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/pkg/completion"
	"github.com/LittleSteps/little-steps-backend/router"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis client, TLS in production.
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.PoolSize > 0 {
		redisOptions.PoolSize = cfg.Redis.PoolSize
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer redisClient.Close()

	// Stores
	userStore := postgres.NewUserStore(pool)
	milestoneStore := postgres.NewMilestoneStore(pool)
	resourceStore := postgres.NewResourceStore(pool)
	conversationStore := postgres.NewConversationStore(pool)
	analyticsStore := postgres.NewAnalyticsStore(pool)
	tipStore := postgres.NewTipStore(pool)

	// Services
	issuer := auth.NewTokenIssuer(&cfg.Auth)
	completionClient := completion.NewClient(&cfg.Completion)

	rateLimitService := services.NewRateLimitService(redisClient)
	authService := services.NewAuthService(userStore, issuer)
	userService := services.NewUserService(userStore)
	milestoneService := services.NewMilestoneService(milestoneStore, userStore, analyticsStore)
	resourceService := services.NewResourceService(resourceStore, userStore, analyticsStore)
	chatService := services.NewChatService(conversationStore, milestoneStore, userStore, analyticsStore, completionClient)
	analyticsService := services.NewAnalyticsService(analyticsStore, milestoneStore, conversationStore, resourceStore)
	tipService := services.NewTipService(tipStore, userStore, analyticsStore, redisClient)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	validator, err := middleware.NewJWTValidator(&cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to create JWT validator: %v", err)
	}

	r := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		JWTValidator:     validator,
		RedisClient:      redisClient,
		RateLimiter:      rateLimitService,
		AuthHandler:      handlers.NewAuthHandler(authService, userService),
		UserHandler:      handlers.NewUserHandler(userService),
		MilestoneHandler: handlers.NewMilestoneHandler(milestoneService),
		ResourceHandler:  handlers.NewResourceHandler(resourceService),
		ChatHandler:      handlers.NewChatHandler(chatService),
		AnalyticsHandler: handlers.NewAnalyticsHandler(analyticsService),
		TipHandler:       handlers.NewTipHandler(tipService),
		HealthHandler:    handlers.NewHealthHandler(healthService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
