package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsAuto(t *testing.T) {
	cfg := &Config{DBDriver: "auto", SQLitePath: "x.db"}
	require.NoError(t, cfg.ResolveDefaults())
	require.Equal(t, "sqlite", cfg.DBDriver)

	cfg = &Config{DBDriver: "auto", PostgresDSN: "postgres://localhost/betterbe"}
	require.NoError(t, cfg.ResolveDefaults())
	require.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaultsRejectsIncomplete(t *testing.T) {
	cfg := &Config{DBDriver: "postgres"}
	require.Error(t, cfg.ResolveDefaults())

	cfg = &Config{DBDriver: "sqlite"}
	require.Error(t, cfg.ResolveDefaults())

	cfg = &Config{DBDriver: "mysql"}
	require.Error(t, cfg.ResolveDefaults())
}

func TestEnvFromEnvironment(t *testing.T) {
	t.Setenv("BETTERBE_HTTP_PORT", "9191")
	t.Setenv("BETTERBE_DEV_MODE", "true")
	t.Setenv("BETTERBE_DB_DRIVER", "sqlite")
	t.Setenv("BETTERBE_SQLITE_PATH", "/tmp/test.db")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.HTTPPort)
	require.True(t, cfg.IsDevMode())
	require.Equal(t, ":9191", cfg.GetHTTPAddr())
	require.Equal(t, "sqlite", cfg.DBDriver)
}

func TestDevModeOffInProduction(t *testing.T) {
	cfg := &Config{Environment: EnvProduction, DevMode: true}
	require.False(t, cfg.IsDevMode())
}
