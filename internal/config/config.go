package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Remote   RemoteConfig
}

// DatabaseConfig is optional; the attendance audit log is disabled when Host is empty.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// RemoteConfig points at the reservation and roster APIs.
type RemoteConfig struct {
	ReservationsBaseURL string
	RosterBaseURL       string
	PageSize            int
	Timeout             time.Duration
	// RefreshInterval reloads opened event boards in the background; zero disables it.
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dashboard_inscritos"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Remote APIs
	pageSize, err := strconv.Atoi(getEnv("RESERVATIONS_PAGE_SIZE", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESERVATIONS_PAGE_SIZE: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_TIMEOUT: %w", err)
	}
	refreshInterval, err := time.ParseDuration(getEnv("BOARD_REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_REFRESH_INTERVAL: %w", err)
	}

	config.Remote = RemoteConfig{
		ReservationsBaseURL: strings.TrimRight(getEnv("RESERVATIONS_BASE_URL", "https://macfer.crepesywaffles.com/api"), "/"),
		RosterBaseURL:       strings.TrimRight(getEnv("ROSTER_BASE_URL", "https://apialohav2.crepesywaffles.com"), "/"),
		PageSize:            pageSize,
		Timeout:             timeout,
		RefreshInterval:     refreshInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Remote.ReservationsBaseURL == "" {
		return fmt.Errorf("RESERVATIONS_BASE_URL is required")
	}
	if c.Remote.RosterBaseURL == "" {
		return fmt.Errorf("ROSTER_BASE_URL is required")
	}
	if c.Remote.PageSize < 1 {
		return fmt.Errorf("RESERVATIONS_PAGE_SIZE must be positive")
	}
	if c.Remote.RefreshInterval < 0 || (c.Remote.RefreshInterval > 0 && c.Remote.RefreshInterval < time.Second) {
		return fmt.Errorf("BOARD_REFRESH_INTERVAL must be 0 or at least 1s")
	}
	if c.Database.Host != "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
	}
	return nil
}

// AuditLogEnabled reports whether a database is configured for the toggle audit log.
func (c *Config) AuditLogEnabled() bool {
	return c.Database.Host != ""
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ParseLogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
