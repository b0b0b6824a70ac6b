package config_test

import (
	"testing"
	"time"

	"dayflow/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("ATTENDANCE_LATE_CUTOFF", "")

	cfg, err := config.Load("does-not-exist.env")

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, 20, cfg.Policy.AnnualLeaveCap)
	assert.Equal(t, 10, cfg.Policy.SickLeaveCap)
	assert.Equal(t, 30*time.Second, cfg.Policy.StatsCacheTTL())
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.RetryInitial)
	assert.Equal(t, 30*time.Second, cfg.Kafka.RetryMax)

	h, m, err := cfg.Policy.Cutoff()
	assert.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
	t.Setenv("ATTENDANCE_LATE_CUTOFF", "10:05")
	t.Setenv("DB_NAME", "hr")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load("does-not-exist.env")

	assert.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "Asia/Kolkata", cfg.Policy.Location().String())
	assert.Contains(t, cfg.Database.DSN(), "dbname=hr")

	h, m, _ := cfg.Policy.Cutoff()
	assert.Equal(t, 10, h)
	assert.Equal(t, 5, m)
}

func TestLoad_InvalidCutoff(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("ATTENDANCE_LATE_CUTOFF", "9.30am")

	_, err := config.Load("does-not-exist.env")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ATTENDANCE_LATE_CUTOFF")
}
