package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecolog/freightquote/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 30, cfg.Server.WriteTimeout)
		require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		require.InDelta(t, 20.0, cfg.RateLimit.RequestsPerSecond, 1e-9)
		require.Equal(t, 40, cfg.RateLimit.Burst)
		require.Equal(t, "memory", cfg.Store.Backend)
		require.Equal(t, 100, cfg.Store.HistoryLimit)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.Equal(t, "freightquote", cfg.Redis.KeyPrefix)
		require.Empty(t, cfg.Postgres.DSN)
		require.Empty(t, cfg.Rates.File)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SERVER_READ_TIMEOUT", "60")
		t.Setenv("STORE_BACKEND", "redis")
		t.Setenv("HISTORY_LIMIT", "25")
		t.Setenv("REDIS_ADDR", "redis:6380")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("POSTGRES_DSN", "postgres://ecolog@db/quotes")
		t.Setenv("RATES_FILE", "/etc/freightquote/rates.yaml")
		t.Setenv("RATE_LIMIT_RPS", "0")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://ecolog.com.br,https://admin.ecolog.com.br")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 60, cfg.Server.ReadTimeout)
		require.Equal(t, "redis", cfg.Store.Backend)
		require.Equal(t, 25, cfg.Store.HistoryLimit)
		require.Equal(t, "redis:6380", cfg.Redis.Addr)
		require.Equal(t, 2, cfg.Redis.DB)
		require.Equal(t, "postgres://ecolog@db/quotes", cfg.Postgres.DSN)
		require.Equal(t, "/etc/freightquote/rates.yaml", cfg.Rates.File)
		require.Zero(t, cfg.RateLimit.RequestsPerSecond)
		require.Equal(t, []string{"https://ecolog.com.br", "https://admin.ecolog.com.br"}, cfg.CORS.AllowedOrigins)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	cfg := &config.Config{}
	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Server, deps.ServerConfig)
	require.Same(t, &cfg.Store, deps.StoreConfig)
	require.Same(t, &cfg.Rates, deps.RatesConfig)
}
