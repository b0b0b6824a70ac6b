package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dayflow/internal/activity"
	"dayflow/internal/config"
	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka/consumer"
	"dayflow/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer projects domain events into the activity feed until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	projector := activity.NewProjector(activity.NewRepository(gormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        cfg.Kafka.ConsumerGroup,
		GroupTopics:    events.Topics(),
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeActivity(ctx, reader, projector, logger, consumer.Config{
		InitialBackoff: cfg.Kafka.RetryInitial,
		MaxBackoff:     cfg.Kafka.RetryMax,
	})

	logger.Info("consumer shutting down")
	return nil
}
