package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ClientID     string // Required: Mobli application client id
	ClientSecret string // Required: Mobli application client secret
	AccessToken  string // Optional: seeds the session with an existing token

	APIBaseURL  string        // Optional: API endpoint override (default: https://api.mobli.com/)
	AuthBaseURL string        // Optional: OAuth endpoint override (default: https://oauth.mobli.com)
	HTTPTimeout time.Duration // HTTP client timeout (default: 30s)

	Workers   int     // Async request workers (default: 4)
	QueueSize int     // Async request queue length (default: 64)
	RateLimit float64 // Requests per second, 0 disables limiting (default: 0)
	RateBurst int     // Rate limiter burst (default: 1)

	Env       string // Environment (dev, staging, prod) (default: prod)
	LogLevel  string // Log level (debug, info, warn, error) (default: warn)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		ClientID:     os.Getenv("MOBLI_CLIENT_ID"),
		ClientSecret: os.Getenv("MOBLI_CLIENT_SECRET"),
		AccessToken:  os.Getenv("MOBLI_ACCESS_TOKEN"),
		APIBaseURL:   os.Getenv("MOBLI_API_BASE_URL"),  // Empty uses the SDK default
		AuthBaseURL:  os.Getenv("MOBLI_AUTH_BASE_URL"), // Empty uses the SDK default
		HTTPTimeout:  getEnvDurationOrDefault("MOBLI_HTTP_TIMEOUT", 30*time.Second),
		Workers:      getEnvIntOrDefault("MOBLI_WORKERS", 4),
		QueueSize:    getEnvIntOrDefault("MOBLI_QUEUE_SIZE", 64),
		RateLimit:    getEnvFloatOrDefault("MOBLI_RATE_LIMIT", 0),
		RateBurst:    getEnvIntOrDefault("MOBLI_RATE_BURST", 1),
		Env:          getEnvOrDefault("ENV", "prod"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "10s", "1m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
