package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/adapters/event"
	"github.com/khoahotran/devconnector-profile/adapters/github"
	httpAdapter "github.com/khoahotran/devconnector-profile/adapters/http"
	"github.com/khoahotran/devconnector-profile/adapters/persistence"
	"github.com/khoahotran/devconnector-profile/internal/application/service"
	profileUC "github.com/khoahotran/devconnector-profile/internal/application/usecase/profile"
	"github.com/khoahotran/devconnector-profile/internal/config"
	"github.com/khoahotran/devconnector-profile/pkg/auth"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
	"github.com/khoahotran/devconnector-profile/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(logger.Options{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "devconnector-profile-api"})
	appLogger.Info("Start DevConnector Profile API Server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnector-profile-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(context.Background(), tp, appLogger)

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
	}

	var publisher service.EventPublisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("No Kafka brokers configured, profile events are dropped")
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan, cfg.Auth.Issuer)
	var repoLookup service.RepoLookup = github.NewClient(cfg, appLogger)
	if redisClient != nil {
		repoLookup = persistence.NewRedisRepoCache(redisClient, repoLookup, cfg.Github.CacheTTL, appLogger)
	}

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, publisher, appLogger)
	entryUseCase := profileUC.NewEntryUseCase(profileRepo, appLogger)
	deleteUseCase := profileUC.NewDeleteProfileUseCase(postRepo, profileRepo, userRepo, publisher, appLogger)
	githubUseCase := profileUC.NewGithubReposUseCase(repoLookup, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, entryUseCase, deleteUseCase, githubUseCase, appLogger)
	checks := map[string]httpAdapter.HealthCheck{"database": dbPool.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthHandler := httpAdapter.NewHealthHandler(checks, appLogger)

	router := httpAdapter.NewRouter(profileHandler, healthHandler, jwtSvc, appLogger).Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown error", err)
	}
}
