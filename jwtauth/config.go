package jwtauth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HS256 secret size in bytes
const MinSecretLength = 32

// Config holds immutable configuration for token verification.
// It is safe for concurrent use once built by NewConfig.
type Config struct {
	secret          []byte
	signingMethod   jwt.SigningMethod
	clockSkewLeeway time.Duration
	logger          *slog.Logger
}

// ConfigOption is a functional option for configuring the guard
type ConfigOption func(*Config) error

// NewConfig creates a new immutable configuration with the given options
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		clockSkewLeeway: 60 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, &ConfigError{Message: "configuration error", Internal: err}
		}
	}

	if cfg.secret == nil || cfg.signingMethod == nil {
		return nil, &ConfigError{Message: "signing secret must be configured (use WithHS256)"}
	}

	return cfg, nil
}

// WithHS256 configures HMAC-SHA256 verification with the given shared secret.
// The secret is copied; later changes to the caller's slice have no effect.
func WithHS256(secret []byte) ConfigOption {
	return func(c *Config) error {
		if len(secret) < MinSecretLength {
			return fmt.Errorf("HS256 secret must be at least %d bytes (256 bits), got %d bytes", MinSecretLength, len(secret))
		}
		c.secret = append([]byte(nil), secret...)
		c.signingMethod = jwt.SigningMethodHS256
		return nil
	}
}

// WithClockSkew sets the clock skew tolerance for exp/nbf validation
func WithClockSkew(skew time.Duration) ConfigOption {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithLogger sets a structured logger for security events
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// Algorithm returns the only accepted signing algorithm
func (c *Config) Algorithm() string {
	return c.signingMethod.Alg()
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}
