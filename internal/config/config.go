package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Session store backends
const (
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
	SessionBackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	ServerDebugMode bool

	SessionBackend string
	SessionTTL     time.Duration
	RedisURL       string
	DatabaseURL    string

	TickTickBaseURL string
	TickTickTimeout time.Duration

	VocabPath string

	MatchThreshold    int
	MaxConfirmRetries int

	RateLimit string

	OTELEnabled  bool
	OTELEndpoint string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),

		SessionBackend: getEnv("SESSION_BACKEND", SessionBackendRedis),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*time.Minute),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		TickTickBaseURL: getEnv("TICKTICK_BASE_URL", ""),
		TickTickTimeout: getEnvDuration("TICKTICK_TIMEOUT", 3*time.Second),

		VocabPath: getEnv("VOCAB_PATH", ""),

		MatchThreshold:    getEnvInt("MATCH_THRESHOLD", 60),
		MaxConfirmRetries: getEnvInt("MAX_CONFIRM_RETRIES", 3),

		RateLimit: getEnv("RATE_LIMIT", "60-M"),

		OTELEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	switch cfg.SessionBackend {
	case SessionBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis session backend")
		}
	case SessionBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres session backend")
		}
	case SessionBackendMemory:
		// no external dependency; confirmation state will not survive restarts
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 100 {
		return nil, fmt.Errorf("MATCH_THRESHOLD must be between 0 and 100, got %d", cfg.MatchThreshold)
	}
	if cfg.MaxConfirmRetries < 1 {
		return nil, fmt.Errorf("MAX_CONFIRM_RETRIES must be at least 1, got %d", cfg.MaxConfirmRetries)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
