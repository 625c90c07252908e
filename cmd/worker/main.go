package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/adapters/persistence"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("FATAL: cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	log.Info("Starting Portfolio Worker...")

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Worker Use Case
	warmCacheUC := portfolioUC.NewWarmCacheUseCase(
		persistence.NewPostgresPortfolioRepo(dbPool, log),
		persistence.NewRedisPortfolioCache(redisClient, cfg.Redis.CacheTTL),
		log,
	)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Worker listening", zap.String("topic", event.TopicPortfolioEvents), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("Worker stopping")
				return
			}
			log.Error("Failed to read message from Kafka", err)
			continue
		}

		payload, err := event.DecodePortfolioEvent(msg)
		if err != nil {
			log.Warn("Skipping malformed portfolio event", zap.Error(err), zap.Int64("offset", msg.Offset))
			commitMessage(ctx, consumer, msg, log)
			continue
		}

		log.Info("Processing portfolio event",
			zap.String("event_type", string(payload.EventType)),
			zap.String("portfolio_id", payload.PortfolioID.String()))

		if err := warmCacheUC.Execute(ctx, payload); err != nil {
			log.Error("Failed to process portfolio event", err, zap.String("portfolio_id", payload.PortfolioID.String()))
			continue
		}

		commitMessage(ctx, consumer, msg, log)
	}
}

func commitMessage(ctx context.Context, r *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := r.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}
