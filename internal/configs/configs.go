package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppURL                   string
	DatabasePath             string
	HeartbeatIntervalSeconds int
	RateLimit                int
	ShutdownTimeoutSeconds   int
	LogDevelopment           bool
	RedisAddr                string
	RedisLivenessKey         string
	RedisLivenessTTLSeconds  int
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	var errs []error
	cfg := Config{
		AppURL:                   fmt.Sprintf("%s:%s", appHost, appPort),
		DatabasePath:             getEnv("DATABASE_PATH", "data/log-owl.db"),
		HeartbeatIntervalSeconds: getEnvAsInt("HEARTBEAT_INTERVAL_SECONDS", 45, &errs),
		RateLimit:                getEnvAsInt("RATE_LIMIT_PER_MINUTE", 600, &errs),
		ShutdownTimeoutSeconds:   getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10, &errs),
		LogDevelopment:           getEnvAsBool("LOG_DEVELOPMENT", false, &errs),
		RedisAddr:                getEnv("REDIS_ADDR", ""),
		RedisLivenessKey:         getEnv("REDIS_LIVENESS_KEY", "log-owl:last_seen"),
		RedisLivenessTTLSeconds:  getEnvAsInt("REDIS_LIVENESS_TTL_SECONDS", 135, &errs),
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) HeartbeatInterval() time.Duration {
	return time.Duration(c.HeartbeatIntervalSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) RedisLivenessTTL() time.Duration {
	return time.Duration(c.RedisLivenessTTLSeconds) * time.Second
}

func validate(cfg Config) error {
	if cfg.DatabasePath == "" {
		return errors.New("DATABASE_PATH must not be empty")
	}
	if cfg.HeartbeatIntervalSeconds <= 0 {
		return errors.New("HEARTBEAT_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.RedisAddr != "" && cfg.RedisLivenessTTLSeconds <= cfg.HeartbeatIntervalSeconds {
		return errors.New("REDIS_LIVENESS_TTL_SECONDS must exceed HEARTBEAT_INTERVAL_SECONDS")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool, errs *[]error) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid boolean value for %s", key))
			return defaultVal
		}
		return b
	}
	return defaultVal
}
