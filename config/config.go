// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	EventBus EventBusConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name            string        `env:"APP_NAME" env-default:"intern-placement-hub"`
	Environment     Environment   `env:"APP_ENV" env-default:"development"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host           string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port           int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            int           `env:"DB_PORT" env-default:"5432"`
	Name            string        `env:"DB_NAME" env-default:"placement"`
	User            string        `env:"DB_USER" env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD" env-default:""`
	SSLMode         string        `env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns        int32         `env:"DB_MAX_CONNS" env-default:"10"`
	MinConns        int32         `env:"DB_MIN_CONNS" env-default:"2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host         string        `env:"REDIS_HOST" env-default:"localhost"`
	Port         int           `env:"REDIS_PORT" env-default:"6379"`
	Password     string        `env:"REDIS_PASSWORD" env-default:""`
	DB           int           `env:"REDIS_DB" env-default:"0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	InternTTL    time.Duration `env:"REDIS_INTERN_TTL" env-default:"5m"`

	// Disabled runs the service without the cache, for development.
	Disabled bool `env:"REDIS_DISABLED" env-default:"false"`
}

// KafkaConfig holds notification producer settings.
type KafkaConfig struct {
	Brokers      []string      `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	WriteTimeout time.Duration `env:"KAFKA_WRITE_TIMEOUT" env-default:"5s"`
	MaxAttempts  int           `env:"KAFKA_MAX_ATTEMPTS" env-default:"3"`

	// Disabled drops notifications instead of producing, for development.
	Disabled bool `env:"KAFKA_DISABLED" env-default:"false"`
}

// EventBusConfig holds in-memory event bus settings.
type EventBusConfig struct {
	Workers int `env:"EVENT_BUS_WORKERS" env-default:"10"`
}

// Load reads configuration from ./config/.env when present, falling back to
// process environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig("./config/.env", &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return nil, fmt.Errorf("config: read env: %w", err)
			}
		} else {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}
	return &cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid HTTP port %d", c.HTTP.Port)
	}
	if c.Database.Name == "" {
		return errors.New("config: DB_NAME is required")
	}
	if !c.Kafka.Disabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("config: KAFKA_BROKERS is required unless KAFKA_DISABLED")
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}
