package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	DatabaseLogLevel       string
	RateLimit              int
	RedisAddr              string
	RedisEventsChannel     string
	RedisRateLimitPrefix   string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskboard.db"),
		DatabaseLogLevel:       getEnv("DB_LOG_LEVEL", "warn"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisEventsChannel:     getEnv("REDIS_EVENTS_CHANNEL", "taskboard:invalidate"),
		RedisRateLimitPrefix:   getEnv("REDIS_RATE_LIMIT_PREFIX", "taskboard:ratelimit"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	// Redis is optional; without a host events are dropped and rate limits
	// are tracked in process.
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	validate(cfg)
	return cfg
}

// RedisEnabled reports whether a Redis address was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func validate(cfg Config) {
	if err := check(cfg); err != nil {
		log.Fatal(err)
	}
}

func check(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if _, err := parseLogLevel(cfg.DatabaseLogLevel); err != nil {
		return err
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.RedisEnabled() && cfg.RedisEventsChannel == "" {
		return fmt.Errorf("REDIS_EVENTS_CHANNEL must not be empty when REDIS_HOST is set")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
