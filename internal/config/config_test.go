package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 200, cfg.Remote.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Remote.RefreshInterval)
	assert.Equal(t, "https://macfer.crepesywaffles.com/api", cfg.Remote.ReservationsBaseURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.False(t, cfg.AuditLogEnabled())
}

func TestLoad_TrimsBaseURLAndSplitsOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("RESERVATIONS_BASE_URL", "http://reservas.local/api/")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://reservas.local/api", cfg.Remote.ReservationsBaseURL)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.App.AllowedOrigins)
}

func TestLoad_InvalidPageSize(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("RESERVATIONS_PAGE_SIZE", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RefreshIntervalDisabled(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("BOARD_REFRESH_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Remote.RefreshInterval)

	t.Setenv("BOARD_REFRESH_INTERVAL", "500ms")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWT:    JWTConfig{Secret: "s"},
		Remote: RemoteConfig{ReservationsBaseURL: "http://r", RosterBaseURL: "http://e", PageSize: 10},
	}
	assert.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.JWT.Secret = ""
	assert.EqualError(t, noSecret.Validate(), "JWT_SECRET_KEY is required")

	dbWithoutPassword := valid
	dbWithoutPassword.Database.Host = "localhost"
	assert.Error(t, dbWithoutPassword.Validate())
	assert.True(t, dbWithoutPassword.AuditLogEnabled())
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", cfg.DatabaseURL())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(""))
}
