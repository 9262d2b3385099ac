package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pscheid92/sentidemo/internal/domain"
	"go-simpler.org/env"
)

// AI configures the lexicon sentiment service.
type AI struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8001"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"20"`
}

// Backend configures the backend service.
type Backend struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8000"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	DBHost           string        `env:"DB_HOST" default:"localhost"`
	DBPort           int           `env:"DB_PORT" default:"5432"`
	DBUser           string        `env:"DB_USER" default:"appuser"`
	DBPassword       string        `env:"DB_PASSWORD" default:"apppassword"`
	DBName           string        `env:"DB_NAME" default:"appdb"`
	DBSSLMode        string        `env:"DB_SSLMODE" default:"prefer"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"5s"`

	AIHost    string        `env:"AI_HOST" default:"localhost"`
	AIPort    int           `env:"AI_PORT" default:"8001"`
	AITimeout time.Duration `env:"AI_TIMEOUT" default:"5s"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"20"`
}

// AIURL is the sentiment endpoint of the AI service.
func (c *Backend) AIURL() string {
	return fmt.Sprintf("http://%s/api/sentiment", net.JoinHostPort(c.AIHost, strconv.Itoa(c.AIPort)))
}

// DBInfo exposes the database location without credentials.
func (c *Backend) DBInfo() domain.DBInfo {
	return domain.DBInfo{Host: c.DBHost, Port: c.DBPort, Name: c.DBName}
}

// LoadAI reads the AI service configuration. envFile names an optional dotenv file; empty
// means ".env".
func LoadAI(envFile string) (*AI, error) {
	var cfg AI
	if err := load(envFile, &cfg); err != nil {
		return nil, err
	}

	if err := validateCommon(cfg.Port, cfg.LogLevel, cfg.LogFormat, cfg.RateLimitRPS, cfg.RateLimitBurst); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadBackend reads the backend service configuration. envFile names an optional dotenv
// file; empty means ".env".
func LoadBackend(envFile string) (*Backend, error) {
	var cfg Backend
	if err := load(envFile, &cfg); err != nil {
		return nil, err
	}

	if err := validateBackend(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func load(envFile string, cfg any) error {
	var err error
	if envFile == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(envFile)
	}
	if err != nil {
		slog.Info("No .env file found, using environment variables", "file", envFile)
	}

	if err := env.Load(cfg, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func validateBackend(cfg *Backend) error {
	if err := validateCommon(cfg.Port, cfg.LogLevel, cfg.LogFormat, cfg.RateLimitRPS, cfg.RateLimitBurst); err != nil {
		return err
	}

	required := map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_USER": cfg.DBUser,
		"DB_NAME": cfg.DBName,
		"AI_HOST": cfg.AIHost,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if !validPort(cfg.DBPort) {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", cfg.DBPort)
	}
	if !validPort(cfg.AIPort) {
		return fmt.Errorf("AI_PORT must be between 1 and 65535, got %d", cfg.AIPort)
	}
	if cfg.AITimeout <= 0 {
		return errors.New("AI_TIMEOUT must be positive")
	}
	if cfg.DBConnectTimeout <= 0 {
		return errors.New("DB_CONNECT_TIMEOUT must be positive")
	}

	mode := strings.ToLower(cfg.DBSSLMode)
	switch mode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("DB_SSLMODE %q is not a valid sslmode", cfg.DBSSLMode)
	}
	if cfg.AppEnv == "production" && (mode == "disable" || mode == "allow") {
		return fmt.Errorf("DB_SSLMODE is set to sslmode=%s which is not allowed in production", mode)
	}
	cfg.DBSSLMode = mode

	return nil
}

func validateCommon(port, logLevel, logFormat string, rps float64, burst int) error {
	p, err := strconv.Atoi(port)
	if err != nil || !validPort(p) {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", port)
	}

	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", logLevel)
	}

	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", logFormat)
	}

	if rps < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	if rps > 0 && burst < 1 {
		return errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	return nil
}

func validPort(p int) bool {
	return p >= 1 && p <= 65535
}
