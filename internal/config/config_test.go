package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("GUARD_DASHBOARD_BYPASS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.False(t, cfg.Guard.DashboardBypass)
	require.Equal(t, "@every 1m", cfg.Jobs.TrainingStatusSpec)
	require.Equal(t, time.Duration(0), cfg.Storage.TTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("GUARD_DASHBOARD_BYPASS", "true")
	t.Setenv("MOCK_LATENCY_MS", "250")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	require.True(t, cfg.Guard.DashboardBypass)
	require.Equal(t, 250*time.Millisecond, cfg.Storage.MockLatency())
	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "etcd")

	_, err := Load()
	require.Error(t, err)
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	require.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
