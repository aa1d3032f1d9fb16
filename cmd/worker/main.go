package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/adapters/event"
	"github.com/khoahotran/devconnector-profile/adapters/github"
	"github.com/khoahotran/devconnector-profile/adapters/persistence"
	workerUC "github.com/khoahotran/devconnector-profile/internal/application/usecase/profile"
	"github.com/khoahotran/devconnector-profile/internal/config"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
	"github.com/khoahotran/devconnector-profile/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(logger.Options{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "devconnector-profile-worker"})
	appLogger.Info("Starting DevConnector Profile Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("config Kafka brokers not found", nil)
	}

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnector-profile-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(context.Background(), tp, appLogger)

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// The cache only needs its eviction side here.
	repoCache := persistence.NewRedisRepoCache(redisClient, github.NewClient(cfg, appLogger), cfg.Github.CacheTTL, appLogger)

	// Worker Use Case
	processProfileEventUC := workerUC.NewProcessProfileEventUseCase(repoCache, appLogger)

	// Kafka Consumer
	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents))

	for {
		msg, err := profileConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		log := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		evt, err := event.DecodeProfileEvent(msg)
		if err != nil {
			log.Error("Failed to unmarshal event, skipping", err)
			commitMessage(ctx, profileConsumer, msg, log)
			continue
		}

		if err := processProfileEventUC.Execute(ctx, evt); err != nil {
			log.Error("Failed to process event", err, zap.String("event_type", string(evt.Type)))
			continue
		}

		commitMessage(ctx, profileConsumer, msg, log)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
