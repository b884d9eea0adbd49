package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Emoticon EmoticonConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"emoticon-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT"` // text or json; empty picks by environment
}

// DatabaseConfig holds credential store settings.
type DatabaseConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"postgres"` // postgres, mysql or sqlite
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"emoticon"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASS" default:""`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	Path     string `envconfig:"DB_PATH" default:"./data/users.db"` // sqlite only
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret     string `envconfig:"JWT_SECRET"`
	JWTAlgorithm  string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	JWTExpiration int    `envconfig:"JWT_EXPIRATION" default:"1000"` // seconds
}

// Expiration returns the token lifetime.
func (a *AuthConfig) Expiration() time.Duration {
	return time.Duration(a.JWTExpiration) * time.Second
}

// CacheConfig holds cache store settings. Entries never expire.
type CacheConfig struct {
	Type     string `envconfig:"CACHE_TYPE" default:"redis"` // redis or memory
	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// EmoticonConfig holds upstream image service settings.
type EmoticonConfig struct {
	BaseURL   string        `envconfig:"EMOTICON_BASE_URL" default:"http://emoticon:8080/monster"`
	Timeout   time.Duration `envconfig:"EMOTICON_TIMEOUT" default:"0s"` // 0 = no client timeout
	UserAgent string        `envconfig:"EMOTICON_USER_AGENT" default:"emoticon-api/1.0"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN returns the data source name for the configured database type.
func (d *DatabaseConfig) DSN() string {
	switch d.Type {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			d.User, d.Password, d.Host, d.Port, d.Name)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
	}
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// LogOutputFormat returns LOG_FORMAT, or text in development and json elsewhere.
func (a *AppConfig) LogOutputFormat() string {
	if a.LogFormat != "" {
		return a.LogFormat
	}
	if a.IsDevelopment() {
		return "text"
	}
	return "json"
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !strings.HasPrefix(c.Auth.JWTAlgorithm, "HS") {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.Auth.JWTAlgorithm)
	}
	if c.Auth.JWTExpiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	switch c.Database.Type {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.Database.Type)
	}
	switch c.Cache.Type {
	case "redis", "memory":
	default:
		return fmt.Errorf("unsupported CACHE_TYPE %q", c.Cache.Type)
	}
	if c.Emoticon.BaseURL == "" {
		return errors.New("EMOTICON_BASE_URL is required")
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
