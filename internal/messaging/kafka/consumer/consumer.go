package consumer

import (
	"context"
	"errors"
	"time"

	"dayflow/internal/activity"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type EventProjector interface {
	Project(ctx context.Context, payload []byte) error
}

type Config struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (c Config) withDefaults() Config {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 500 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 30 * time.Second
	}
	return c
}

// newBackOff never gives up on its own; only ctx ends it.
func (c Config) newBackOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialBackoff
	b.MaxInterval = c.MaxBackoff
	b.MaxElapsedTime = 0
	return backoff.WithContext(b, ctx)
}

// ConsumeActivity feeds every domain event into the activity projector, one
// message at a time. Messages that can never be projected are committed and
// skipped. Any other failure is retried on the same message until it
// succeeds or ctx is cancelled; a group reader commits offsets cumulatively,
// so moving past a failed message would lose it.
func ConsumeActivity(
	ctx context.Context,
	reader MessageReader,
	projector EventProjector,
	logger *zap.Logger,
	cfg Config,
) {
	cfg = cfg.withDefaults()
	log := logger.Named("kafka.consumer.activity")
	log.Info("activity consumer started")

	fetchBackoff := cfg.newBackOff(ctx)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("activity consumer stopped")
				return
			}
			wait := fetchBackoff.NextBackOff()
			log.Error("fetch activity message failed", zap.Duration("retry_in", wait), zap.Error(err))
			if !sleep(ctx, wait) {
				log.Info("activity consumer stopped")
				return
			}
			continue
		}
		fetchBackoff.Reset()

		if err := projectWithRetry(ctx, msg, projector, cfg, log); err != nil {
			log.Info("activity consumer stopped",
				zap.Int64("uncommitted_offset", msg.Offset),
			)
			return
		}

		commit := func() error { return reader.CommitMessages(ctx, msg) }
		notify := func(err error, wait time.Duration) {
			log.Error("commit activity message failed",
				zap.Int64("offset", msg.Offset),
				zap.Duration("retry_in", wait),
				zap.Error(err),
			)
		}
		if err := backoff.RetryNotify(commit, cfg.newBackOff(ctx), notify); err != nil {
			log.Info("activity consumer stopped")
			return
		}
	}
}

// projectWithRetry returns nil once msg is projected or deliberately skipped,
// and ctx's error if it is cancelled first.
func projectWithRetry(
	ctx context.Context,
	msg kafkago.Message,
	projector EventProjector,
	cfg Config,
	log *zap.Logger,
) error {
	op := func() error {
		err := projector.Project(ctx, msg.Value)
		if errors.Is(err, activity.ErrUnknownEvent) {
			log.Warn("skipping unprojectable event",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			return nil
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Error("project activity failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	}
	return backoff.RetryNotify(op, cfg.newBackOff(ctx), notify)
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d == backoff.Stop {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
