package producer_test

import (
	"context"
	"errors"
	"testing"

	"dayflow/internal/messaging/kafka"
	kafkaMock "dayflow/internal/messaging/kafka/mock"
	"dayflow/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failOn  map[string]error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := f.failOn[string(m.Key)]; ok {
			return err
		}
		f.written = append(f.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "leave-1", EventType: "leave.requested", Topic: "hr.leave.lifecycle.v1", Payload: []byte(`{}`)},
			{ID: "o-2", AggregateID: "leave-2", EventType: "leave.approved", Topic: "hr.leave.lifecycle.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-1").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 50)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Len(t, writer.written, 2)
		assert.Equal(t, "hr.leave.lifecycle.v1", writer.written[0].Topic)
		assert.Equal(t, []byte("leave-1"), writer.written[0].Key)
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
		writer := &fakeWriter{failOn: map[string]error{"leave-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(gomock.Any(), 10).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "leave-1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "o-2", AggregateID: "leave-2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "o-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error", func(t *testing.T) {
		repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
		repo.EXPECT().ListPending(gomock.Any(), 10).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10)
		assert.Error(t, err)
	})
}
