package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/tasks")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("LOG_DEV", "")
	t.Setenv("SEED", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreMySQL, cfg.StoreDriver)
	require.Equal(t, "dev-secret-only", cfg.JWTSecret)
	require.Equal(t, "8080", cfg.AppPort)
	require.False(t, cfg.LogDev)
	require.False(t, cfg.Seed)
}

func TestLoad_mysqlRequiresDSN(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("STORE_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_memoryDriver(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("SEED", "1")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreMemory, cfg.StoreDriver)
	require.Equal(t, "9090", cfg.AppPort)
	require.True(t, cfg.LogDev)
	require.True(t, cfg.Seed)
}

func TestLoad_unknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
}
