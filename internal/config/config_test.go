package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/alter-ego/internal/config"
	"github.com/KirkDiggler/alter-ego/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, time.Minute, cfg.Limits.Window)
	assert.Equal(t, 5, cfg.Limits.Capacity)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, config.StoreSQLite, cfg.Store.Backend)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALTER_EGO_RATE_WINDOW", "30s")
	t.Setenv("ALTER_EGO_RATE_CAPACITY", "2")
	t.Setenv("ALTER_EGO_ALLOW_ORIGINS", "http://localhost:3000,https://alter-ego.example")
	t.Setenv("ALTER_EGO_STORE", "redis")
	t.Setenv("GEMINI_RPM", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Limits.Window)
	assert.Equal(t, 2, cfg.Limits.Capacity)
	assert.Equal(t, []string{"http://localhost:3000", "https://alter-ego.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, config.StoreRedis, cfg.Store.Backend)
	assert.Equal(t, 30.0, cfg.Gemini.RequestsPerMinute)
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"unparseable duration", "ALTER_EGO_RATE_WINDOW", "soon"},
		{"zero capacity", "ALTER_EGO_RATE_CAPACITY", "0"},
		{"unknown store", "ALTER_EGO_STORE", "postgres"},
		{"unknown log format", "ALTER_EGO_LOG_FORMAT", "xml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}
