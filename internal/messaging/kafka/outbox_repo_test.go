package kafka_test

import (
	"context"
	"testing"

	"dayflow/internal/messaging/kafka"
	"dayflow/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	ev, err := kafka.NewOutboxEvent("rid", "leave", "l-1", "leave.requested", "topic", map[string]string{"a": "b"})

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"a":"b"}`, string(ev.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.Error(t, kafka.ValidateOutboxEvent(kafka.OutboxEvent{}))
	assert.Error(t, kafka.ValidateOutboxEvent(kafka.OutboxEvent{ID: "x", Topic: "t", Payload: []byte("{}"), Status: "weird"}))
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs(kafka.OutboxStatusFailed, "boom", "o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "o-1", "boom"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := kafka.NewOutboxRepository(db)

	rows := sqlmock.NewRows([]string{"id", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count"}).
		AddRow("o-1", "l-1", "leave.requested", "topic", []byte(`{}`), kafka.OutboxStatusPending, 0)

	mock.ExpectQuery(`SELECT \* FROM "outbox_events" WHERE status IN`).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "o-1", events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
