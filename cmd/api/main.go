package main

import (
	"context"
	"go-jobify-backend/config"
	_ "go-jobify-backend/docs" // Important for Swagger
	"go-jobify-backend/internal/client"
	v1 "go-jobify-backend/internal/delivery/http/v1"
	"go-jobify-backend/internal/notify"
	"go-jobify-backend/internal/repository/postgres"
	"go-jobify-backend/internal/usecase"
	"go-jobify-backend/pkg/database"
	"go-jobify-backend/pkg/logger"
	"go-jobify-backend/pkg/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobify-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// @title           Jobify Lifecycle API
// @version         1.0
// @description     Application and interview lifecycle backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting jobify lifecycle backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (best effort, rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 6. Setup Collaborator Clients
	userClient := client.NewUserClient(cfg.UserServiceURL, cfg.RemoteCallTimeout)
	jobOfferClient := client.NewJobOfferClient(cfg.JobOfferServiceURL, cfg.RemoteCallTimeout)

	// 7. Setup UseCases
	validate := validator.New()
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, userClient, jobOfferClient, validate)

	// The interview side talks to applications through a gateway: over HTTP
	// when APPLICATION_SERVICE_URL points at a separate deployment, in-process
	// otherwise.
	var applicationGW domain.ApplicationGateway
	if cfg.ApplicationServiceURL != "" {
		applicationGW = client.NewApplicationClient(cfg.ApplicationServiceURL, cfg.RemoteCallTimeout)
	} else {
		applicationGW = usecase.NewLocalApplicationGateway(applicationUC)
	}

	sink, err := notify.NewLogSink("jobify-lifecycle")
	if err != nil {
		logger.Log.Error("Failed to build notification sink", "error", err)
		os.Exit(1)
	}
	defer sink.Sync()

	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationGW, userClient, sink, validate)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC: applicationUC,
		InterviewUC:   interviewUC,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
