package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Production = "production"

type DatabaseOptions struct {
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        string `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"postgres"`
	Password    string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name        string `env:"DB_NAME" envDefault:"dayflow"`
	SSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries  int    `env:"DB_MAX_RETRIES" envDefault:"5"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

type RedisOptions struct {
	Addr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	MaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
}

type KafkaOptions struct {
	Broker        string        `env:"KAFKA_BROKER"`
	ConsumerGroup string        `env:"KAFKA_CONSUMER_GROUP" envDefault:"dayflow-activity"`
	PollInterval  time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	BatchSize     int           `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`

	RetryInitial time.Duration `env:"KAFKA_CONSUMER_RETRY_INITIAL" envDefault:"500ms"`
	RetryMax     time.Duration `env:"KAFKA_CONSUMER_RETRY_MAX" envDefault:"30s"`
}

type HTTPOptions struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	// Comma separated; empty allows no cross-origin callers.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// IdentityOptions points at the external identity provider that issues the
// bearer tokens and owns user logins.
type IdentityOptions struct {
	JWTSecret      string `env:"JWT_SECRET"`
	URL            string `env:"IDENTITY_URL"`
	ServiceRoleKey string `env:"IDENTITY_SERVICE_ROLE_KEY"`
}

type PolicyOptions struct {
	Timezone          string `env:"APP_TIMEZONE" envDefault:"UTC"`
	LateCutoff        string `env:"ATTENDANCE_LATE_CUTOFF" envDefault:"09:30"`
	AnnualLeaveCap    int    `env:"ANNUAL_LEAVE_CAP" envDefault:"20"`
	SickLeaveCap      int    `env:"SICK_LEAVE_CAP" envDefault:"10"`
	StatsCacheSeconds int    `env:"DASHBOARD_CACHE_SECONDS" envDefault:"30"`
	Currency          string `env:"PAYROLL_CURRENCY" envDefault:"USD"`
}

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Database DatabaseOptions
	Redis    RedisOptions
	Kafka    KafkaOptions
	HTTP     HTTPOptions
	Identity IdentityOptions
	Policy   PolicyOptions
}

// Load reads the given .env files (missing files are ignored) and parses the
// process environment into a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Policy.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Policy.Timezone, err)
	}
	if _, _, err := c.Policy.Cutoff(); err != nil {
		return err
	}
	if c.Policy.AnnualLeaveCap < 0 || c.Policy.SickLeaveCap < 0 {
		return fmt.Errorf("leave caps must be non-negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, Production)
}

func (d DatabaseOptions) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func (p PolicyOptions) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Cutoff parses LateCutoff ("HH:MM").
func (p PolicyOptions) Cutoff() (hour, minute int, err error) {
	t, err := time.Parse("15:04", p.LateCutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid ATTENDANCE_LATE_CUTOFF %q, expected HH:MM", p.LateCutoff)
	}
	return t.Hour(), t.Minute(), nil
}

func (p PolicyOptions) StatsCacheTTL() time.Duration {
	return time.Duration(p.StatsCacheSeconds) * time.Second
}
