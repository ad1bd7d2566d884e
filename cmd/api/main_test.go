package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/waryix/FightFind/internal/config"
)

func TestInitLoggerHonorsConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Log.Level = "warn"

	logger, err := initLogger(cfg)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.Server.Env = "development"
	cfg.Log.Level = "debug"

	logger, err = initLogger(cfg)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerBadLevelFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "chatty"

	logger, err := initLogger(cfg)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
