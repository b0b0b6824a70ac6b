package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"dayflow/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) { l.log.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...any) { l.log.Fatalf(format, v...) }

// Migrate runs one goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: logger.Named("migrate").Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case MigrateUp:
		return goose.UpContext(ctx, db, ".")
	case MigrateDown:
		return goose.DownContext(ctx, db, ".")
	case MigrateStatus:
		return goose.StatusContext(ctx, db, ".")
	case MigrateVersion:
		return goose.VersionContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}
