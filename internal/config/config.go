package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App       AppConfig
	Remote    RemoteConfig
	Redis     RedisConfig
	Staleness StalenessConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// RemoteConfig points at the headless CMS REST backend.
type RemoteConfig struct {
	BaseURL string        // e.g. https://cms.example.com/api
	Timeout time.Duration // per-request bound so a hung backend cannot pin a fetch
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// StalenessConfig carries the per-resource freshness windows for the query
// cache coordinator. Longer-lived resources change less often and are shared
// across more readers, so they get longer windows.
type StalenessConfig struct {
	List     time.Duration
	Detail   time.Duration
	Related  time.Duration
	Taxonomy time.Duration
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultRemoteBaseURL is the fallback when BLOG_API_URL is unset.
const DefaultRemoteBaseURL = "https://api.bemarketing.io/api/v1"

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blog Gateway"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Remote: RemoteConfig{
			BaseURL: getEnv("BLOG_API_URL", DefaultRemoteBaseURL),
			Timeout: getEnvDuration("BLOG_API_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Staleness: StalenessConfig{
			List:     getEnvDuration("CACHE_STALE_LIST", 5*time.Minute),
			Detail:   getEnvDuration("CACHE_STALE_DETAIL", 10*time.Minute),
			Related:  getEnvDuration("CACHE_STALE_RELATED", 15*time.Minute),
			Taxonomy: getEnvDuration("CACHE_STALE_TAXONOMY", 60*time.Minute),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvInt("RATE_LIMIT_MAX", 30),
			Window:      getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("BLOG_API_URL must not be empty")
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("BLOG_API_TIMEOUT must be positive")
	}
	if c.App.Environment == "production" && c.Redis.Password == "" {
		fmt.Println("WARNING: REDIS_PASSWORD not set - using unauthenticated Redis in production")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
