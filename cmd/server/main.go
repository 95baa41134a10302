package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formforge/internal/cache"
	"formforge/internal/config"
	"formforge/internal/logx"
	"formforge/internal/repository"
	"formforge/internal/service"
	"formforge/internal/transport/rest"
	"formforge/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title FormForge API
// @version 1.0
// @description Form builder backend: auth, form CRUD, responses, analytics
// @host localhost:8080
// @BasePath /api
func main() {
	ctx := context.Background()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		logx.Infof("AI form generation enabled (model %s)", aiConfig.Model)
	} else {
		logx.Info("AI form generation disabled: GEMINI_API_KEY not set")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logx.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logx.Fatal("Failed to ping MongoDB:", err)
	}
	logx.Info("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logx.Fatal("Failed to ping Redis:", err)
	}
	logx.Info("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	formRepo := repository.NewFormRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize caches
	statsCache := cache.NewStatsCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	formSvc := service.NewFormService(formRepo, responseRepo, userRepo, statsCache)
	responseSvc := service.NewResponseService(formRepo, responseRepo, statsCache)
	analyticsSvc := service.NewAnalyticsService(formRepo, responseRepo, statsCache)
	generatorSvc := service.NewGeneratorService(aiConfig)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		FormService:      formSvc,
		ResponseService:  responseSvc,
		AnalyticsService: analyticsSvc,
		GeneratorService: generatorSvc,
		WSHub:            wsHub,
		CORSOrigins:      cfg.CORSOrigins,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logx.Infof("Server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logx.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Fatal("Server forced to shutdown:", err)
	}

	logx.Info("Server exited")
}
