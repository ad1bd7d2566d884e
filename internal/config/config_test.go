package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "development", cfg.Server.Env)
	require.False(t, cfg.IsProduction())
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	require.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	require.Equal(t, 100, cfg.Search.MaxLimit)
	require.NotEmpty(t, cfg.Database.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9999", cfg.Server.Port)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "postgres://u:p@db:5432/app", cfg.Database.URL)
	require.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
}
