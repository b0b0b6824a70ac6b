package consumer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dayflow/internal/activity"
	"dayflow/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var fastRetry = consumer.Config{
	InitialBackoff: time.Millisecond,
	MaxBackoff:     2 * time.Millisecond,
}

type scriptedReader struct {
	msgs       []kafkago.Message
	fetchErrs  []error
	committed  []int64
	commitErrs []error
	cancel     context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafkago.Message{}, err
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	if len(r.commitErrs) > 0 {
		err := r.commitErrs[0]
		r.commitErrs = r.commitErrs[1:]
		return err
	}
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type projectorFunc func(ctx context.Context, payload []byte) error

func (f projectorFunc) Project(ctx context.Context, payload []byte) error { return f(ctx, payload) }

func TestConsumeActivity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: []byte("ok")},
			{Offset: 2, Value: []byte("garbage")},
			{Offset: 3, Value: []byte("transient")},
			{Offset: 4, Value: []byte("ok")},
		},
	}

	var order []string
	transientFailures := 2
	projector := projectorFunc(func(_ context.Context, payload []byte) error {
		order = append(order, string(payload))
		switch string(payload) {
		case "garbage":
			return activity.ErrUnknownEvent
		case "transient":
			if transientFailures > 0 {
				transientFailures--
				return errors.New("db down")
			}
		}
		return nil
	})

	consumer.ConsumeActivity(ctx, reader, projector, zap.NewNop(), fastRetry)

	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
	assert.Equal(t, []string{"ok", "garbage", "transient", "transient", "transient", "ok"}, order)
}

func TestConsumeActivity_CancelDuringRetryLeavesOffsetUncommitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: []byte("ok")},
			{Offset: 2, Value: []byte("transient")},
			{Offset: 3, Value: []byte("ok")},
		},
	}

	attempts := 0
	projector := projectorFunc(func(_ context.Context, payload []byte) error {
		if string(payload) != "transient" {
			return nil
		}
		attempts++
		if attempts == 3 {
			cancel()
		}
		return errors.New("db down")
	})

	consumer.ConsumeActivity(ctx, reader, projector, zap.NewNop(), fastRetry)

	assert.Equal(t, []int64{1}, reader.committed)
	assert.Equal(t, 3, attempts)
	assert.Len(t, reader.msgs, 1, "offset 3 must not be fetched past the failing message")
}

func TestConsumeActivity_RetriesFetchAndCommitErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel:     cancel,
		fetchErrs:  []error{errors.New("broker away"), errors.New("broker away")},
		commitErrs: []error{errors.New("rebalance")},
		msgs:       []kafkago.Message{{Offset: 7, Value: []byte("ok")}},
	}

	projected := 0
	projector := projectorFunc(func(context.Context, []byte) error {
		projected++
		return nil
	})

	consumer.ConsumeActivity(ctx, reader, projector, zap.NewNop(), fastRetry)

	assert.Equal(t, 1, projected)
	assert.Equal(t, []int64{7}, reader.committed)
}
