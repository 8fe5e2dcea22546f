package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends understood by STORAGE_BACKEND.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port           string        `mapstructure:"PORT" validate:"required"`
	IsProduction   bool          `mapstructure:"IS_PRODUCTION"`
	LogLevel       string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	DatabaseURL    string        `mapstructure:"PGSQL_URL" validate:"required_if=StorageBackend postgres"`
	StorageBackend string        `mapstructure:"STORAGE_BACKEND" validate:"oneof=postgres memory"`
	RunMigrations  bool          `mapstructure:"RUN_MIGRATIONS"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH" validate:"required"`
	JWTSecret      string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	JWTIssuer      string        `mapstructure:"JWT_ISSUER" validate:"required"`
	RateLimit      string        `mapstructure:"RATE_LIMIT" validate:"required"`
	AllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownPeriod time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Notification delivery
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	NotifyChannelPrefix string `mapstructure:"NOTIFY_CHANNEL_PREFIX" validate:"required"`
	NotifyStream        string `mapstructure:"NOTIFY_STREAM"`
	NotifyStreamMaxLen  int64  `mapstructure:"NOTIFY_STREAM_MAXLEN" validate:"min=0"`
	NotifyWorkers       int    `mapstructure:"NOTIFY_WORKERS" validate:"min=1,max=64"`
	NotifyQueueSize     int    `mapstructure:"NOTIFY_QUEUE_SIZE" validate:"min=1"`
	NotifyMaxAttempts   int    `mapstructure:"NOTIFY_MAX_ATTEMPTS" validate:"min=1,max=10"`

	// Audit retries
	AuditMaxAttempts  int           `mapstructure:"AUDIT_MAX_ATTEMPTS" validate:"min=2,max=10"`
	AuditRetryBackoff time.Duration `mapstructure:"AUDIT_RETRY_BACKOFF"`

	// Operator alerts over SMTP, disabled when SMTP_HOST is empty
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT" validate:"min=0,max=65535"`
	SMTPUser      string `mapstructure:"SMTP_USER"`
	SMTPPass      string `mapstructure:"SMTP_PASS"`
	SMTPFrom      string `mapstructure:"SMTP_FROM" validate:"required_with=SMTPHost"`
	OperatorEmail string `mapstructure:"OPERATOR_EMAIL" validate:"required_with=SMTPHost"`
}

// AlertsEnabled reports whether operator alert e-mails can be sent.
func (c *Config) AlertsEnabled() bool {
	return c.SMTPHost != "" && c.OperatorEmail != ""
}

// SlogLevel converts LogLevel into a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_BACKEND", StoragePostgres)
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "academic-docs-app")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("NOTIFY_CHANNEL_PREFIX", "docflow:notify:")
	v.SetDefault("NOTIFY_STREAM", "docflow:notifications")
	v.SetDefault("NOTIFY_STREAM_MAXLEN", 10000)
	v.SetDefault("NOTIFY_WORKERS", 4)
	v.SetDefault("NOTIFY_QUEUE_SIZE", 1024)
	v.SetDefault("NOTIFY_MAX_ATTEMPTS", 3)
	v.SetDefault("AUDIT_MAX_ATTEMPTS", 3)
	v.SetDefault("AUDIT_RETRY_BACKOFF", "100ms")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("OPERATOR_EMAIL", "")

	// Environment variables override defaults and the .env file.
	v.AutomaticEnv()

	cfg := &Config{
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		StorageBackend:      strings.ToLower(v.GetString("STORAGE_BACKEND")),
		RunMigrations:       v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		AllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		ShutdownPeriod:      v.GetDuration("SHUTDOWN_TIMEOUT"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		NotifyChannelPrefix: v.GetString("NOTIFY_CHANNEL_PREFIX"),
		NotifyStream:        v.GetString("NOTIFY_STREAM"),
		NotifyStreamMaxLen:  v.GetInt64("NOTIFY_STREAM_MAXLEN"),
		NotifyWorkers:       v.GetInt("NOTIFY_WORKERS"),
		NotifyQueueSize:     v.GetInt("NOTIFY_QUEUE_SIZE"),
		NotifyMaxAttempts:   v.GetInt("NOTIFY_MAX_ATTEMPTS"),
		AuditMaxAttempts:    v.GetInt("AUDIT_MAX_ATTEMPTS"),
		AuditRetryBackoff:   v.GetDuration("AUDIT_RETRY_BACKOFF"),
		SMTPHost:            v.GetString("SMTP_HOST"),
		SMTPPort:            v.GetInt("SMTP_PORT"),
		SMTPUser:            v.GetString("SMTP_USER"),
		SMTPPass:            v.GetString("SMTP_PASS"),
		SMTPFrom:            v.GetString("SMTP_FROM"),
		OperatorEmail:       v.GetString("OPERATOR_EMAIL"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.StorageBackend == StoragePostgres && cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set, notifications are only logged")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
