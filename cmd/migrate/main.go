package main

import (
	"os"

	"dayflow/internal/bootstrap"
	"dayflow/internal/config"
	"dayflow/internal/shared/connection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or inspect the dayflow schema migrations",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	for _, sub := range []struct {
		name, short string
	}{
		{bootstrap.MigrateUp, "Apply all pending migrations"},
		{bootstrap.MigrateDown, "Roll back the most recent migration"},
		{bootstrap.MigrateStatus, "Print the applied state of every migration"},
		{bootstrap.MigrateVersion, "Print the current schema version"},
	} {
		command := sub.name
		root.AddCommand(&cobra.Command{
			Use:   sub.name,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, envFile, command)
			},
		})
	}
	return root
}

func run(cmd *cobra.Command, envFile, command string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := bootstrap.Migrate(cmd.Context(), sqlDB, command, logger); err != nil {
		logger.Error("migration failed", zap.String("command", command), zap.Error(err))
		return err
	}
	return nil
}
