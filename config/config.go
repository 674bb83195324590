package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// Collaborator service base URLs
	UserServiceURL        string
	JobOfferServiceURL    string
	ApplicationServiceURL string // empty = use the in-process application engine
	// Bound on every remote collaborator call. A timed-out existence check
	// is treated as "not found" (fail-closed), so this knob directly shapes
	// user-visible behavior when a sibling service degrades.
	RemoteCallTimeout time.Duration
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitWriteThreshold  int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		DBUrl:                 getEnv("DATABASE_URL", ""),
		UserServiceURL:        getEnv("USER_SERVICE_URL", "http://localhost:8081"),
		JobOfferServiceURL:    getEnv("JOBOFFER_SERVICE_URL", "http://localhost:8082"),
		ApplicationServiceURL: getEnv("APPLICATION_SERVICE_URL", ""),
		RemoteCallTimeout:     getEnvDuration("REMOTE_CALL_TIMEOUT", 5*time.Second),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 30),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
