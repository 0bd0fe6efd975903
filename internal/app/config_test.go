package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"MOBLI_CLIENT_ID", "MOBLI_CLIENT_SECRET", "MOBLI_ACCESS_TOKEN",
		"MOBLI_API_BASE_URL", "MOBLI_AUTH_BASE_URL", "MOBLI_HTTP_TIMEOUT",
		"MOBLI_WORKERS", "MOBLI_QUEUE_SIZE", "MOBLI_RATE_LIMIT", "MOBLI_RATE_BURST",
		"ENV", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Empty(t, cfg.ClientID)
	require.Empty(t, cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 64, cfg.QueueSize)
	require.Zero(t, cfg.RateLimit)
	require.Equal(t, 1, cfg.RateBurst)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MOBLI_CLIENT_ID", "abc")
	t.Setenv("MOBLI_CLIENT_SECRET", "xyz")
	t.Setenv("MOBLI_ACCESS_TOKEN", "T")
	t.Setenv("MOBLI_API_BASE_URL", "http://localhost:9000/")
	t.Setenv("MOBLI_AUTH_BASE_URL", "http://localhost:9001")
	t.Setenv("MOBLI_HTTP_TIMEOUT", "5")
	t.Setenv("MOBLI_WORKERS", "8")
	t.Setenv("MOBLI_QUEUE_SIZE", "not-a-number")
	t.Setenv("MOBLI_RATE_LIMIT", "2.5")
	t.Setenv("MOBLI_RATE_BURST", "3")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadConfig()

	require.Equal(t, "abc", cfg.ClientID)
	require.Equal(t, "xyz", cfg.ClientSecret)
	require.Equal(t, "T", cfg.AccessToken)
	require.Equal(t, "http://localhost:9000/", cfg.APIBaseURL)
	require.Equal(t, "http://localhost:9001", cfg.AuthBaseURL)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, 64, cfg.QueueSize)
	require.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
	require.Equal(t, 3, cfg.RateBurst)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestGetEnvDurationOrDefault(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Minute},
		{"90s", 90 * time.Second},
		{"2m", 2 * time.Minute},
		{"10", 10 * time.Second},
		{"soon", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("MOBLI_TEST_DURATION", tt.value)
			require.Equal(t, tt.want, getEnvDurationOrDefault("MOBLI_TEST_DURATION", time.Minute))
		})
	}
}
