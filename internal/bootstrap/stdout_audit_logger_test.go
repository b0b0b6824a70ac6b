package bootstrap_test

import (
	"context"
	"testing"

	"dayflow/internal/bootstrap"
	"dayflow/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	bootstrap.NewStdoutAuditLogger().Log(ctx, bootstrap.AuditLog{
		Action:  "SERVER_START",
		Message: "Server started",
		Meta:    map[string]any{"port": "3000"},
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "SERVER_START", fields["action"])
		assert.Equal(t, "rid-1", fields["request_id"])
		assert.Contains(t, fields, "meta")
	}
}

func TestStdoutAuditLogger_OmitsEmptyMeta(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	bootstrap.NewStdoutAuditLogger().Log(context.Background(), bootstrap.AuditLog{Action: "SERVER_SHUTDOWN"})

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "meta")
	assert.NotContains(t, fields, "request_id")
}
