package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test; t.Setenv restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_DefaultPortWhenUnset(t *testing.T) {
	unsetEnv(t, "PORT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoad_PortSelection(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
		addr     string
	}{
		{"uses the configured port", "3000", 3000, "0.0.0.0:3000"},
		{"accepts a leading plus sign", "+3000", 3000, "0.0.0.0:3000"},
		{"ignores surrounding whitespace", " 8080 ", 8080, "0.0.0.0:8080"},
		{"accepts zero", "0", 0, "0.0.0.0:0"},
		{"accepts the highest port", "65535", 65535, "0.0.0.0:65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Port)
			assert.Equal(t, tt.addr, cfg.Addr())
		})
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, value := range []string{"", "   ", "notanumber", "abc", "-1", "+", "++80", "+-80", "3.5", "65536", "99999999999999999999"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("PORT", value)

			cfg, err := Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPort)
			assert.Contains(t, err.Error(), value)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ALLOW_ORIGINS", "STATIC_DIR", "BODY_LIMIT_BYTES", "IDLE_TIMEOUT_SECONDS",
		"SHUTDOWN_TIMEOUT_SECONDS", "TRUST_PROXY_HEADERS", "LOG_LEVEL", "REDIS_HOST", "REDIS_ENDPOINT",
		"CLICKHOUSE_HOST", "CLICKHOUSE_DSN", "DATABASE_URL",
	} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimit)
	assert.Equal(t, 5*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.ClickHouse.Enabled())
	assert.False(t, cfg.Postgres.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com,,")
	t.Setenv("IDLE_TIMEOUT_SECONDS", "30")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "bogus")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ENDPOINT", "redis.internal:6380")
	t.Setenv("DATABASE_URL", "postgres://app@db/app")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout, "invalid values fall back to the default")
	assert.True(t, cfg.TrustProxyHeaders)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "redis.internal:6380", cfg.Redis.GetRedisAddr())
	assert.True(t, cfg.Postgres.Enabled())
}

func TestGetClickHouseDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ClickHouseConfig
		expected string
	}{
		{
			name:     "explicit DSN wins",
			cfg:      ClickHouseConfig{DSN: "clickhouse://x@y:9000/z", Host: "ignored"},
			expected: "clickhouse://x@y:9000/z",
		},
		{
			name:     "built from parts",
			cfg:      ClickHouseConfig{Host: "ch", Port: "9000", Database: "analytics", User: "app", Password: "secret"},
			expected: "clickhouse://app:secret@ch:9000/analytics",
		},
		{
			name:     "no credentials",
			cfg:      ClickHouseConfig{Host: "ch", Port: "9440", Database: "default"},
			expected: "clickhouse://ch:9440/default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.GetClickHouseDSN())
		})
	}
}

func TestGetRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: "6379"}
	assert.Equal(t, "cache:6379", r.GetRedisAddr())

	r.Endpoint = "other:7000"
	assert.Equal(t, "other:7000", r.GetRedisAddr())
}
