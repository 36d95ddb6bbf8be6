package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Wang-tianhao/vibrant-userguard/jwtauth"
)

// Config is the process configuration
type Config struct {
	Port            uint
	LogLevel        string
	JWTSecret       []byte
	ClockSkew       time.Duration
	ShutdownTimeout time.Duration
}

// New reads configuration from the environment. Variables from envFiles
// (".env" when none are given) are loaded first without overriding values
// already set in the environment. Missing files are ignored.
func New(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(secret) < jwtauth.MinSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d; rotate shorter secrets (e.g. openssl rand -hex 32) and reissue tokens", jwtauth.MinSecretLength, len(secret))
	}

	port, err := getDefaultUintEnv("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("failed to get PORT: %w", err)
	}

	clockSkew, err := getDefaultDurationEnv("JWT_CLOCK_SKEW", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWT_CLOCK_SKEW: %w", err)
	}

	shutdownTimeout, err := getDefaultDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to get SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            port,
		LogLevel:        getDefaultStringEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       []byte(secret),
		ClockSkew:       clockSkew,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getDefaultStringEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getDefaultUintEnv(key string, defaultValue uint) (uint, error) {
	v := os.Getenv(key)
	if len(v) == 0 {
		return defaultValue, nil
	}

	ret, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid environment variable %s=%s: %w", key, v, err)
	}
	return uint(ret), nil
}

func getDefaultDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if len(v) == 0 {
		return defaultValue, nil
	}

	ret, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid environment variable %s=%s: %w", key, v, err)
	}
	if ret < 0 {
		return 0, fmt.Errorf("invalid environment variable %s=%s: must be non-negative", key, v)
	}
	return ret, nil
}
