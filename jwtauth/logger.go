package jwtauth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SecurityEvent represents a structured security log entry
type SecurityEvent struct {
	EventType     string        // "success" or "failure"
	Timestamp     time.Time     // Event timestamp
	RequestID     string        // Correlation ID
	UserID        int64         // id claim (zero when the token was not verified)
	Username      string        // username claim
	Role          string        // role claim
	RequiredRole  string        // role demanded by the operation
	Algorithm     string        // alg header of the presented token
	Kind          string        // public error kind (on failure)
	FailureReason string        // internal reason code (on failure)
	TokenPreview  string        // Redacted token preview
	Latency       time.Duration // Decision latency
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e SecurityEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.Int64("user_id", e.UserID),
		slog.String("username", e.Username),
		slog.String("role", e.Role),
		slog.String("required_role", e.RequiredRole),
		slog.String("algorithm", e.Algorithm),
		slog.String("kind", e.Kind),
		slog.String("failure_reason", e.FailureReason),
		slog.String("token", redactToken(e.TokenPreview)),
		slog.Duration("latency", e.Latency),
	)
}

// redactToken redacts sensitive token data
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// logSecurityEvent emits a security event via the configured logger
func logSecurityEvent(logger *slog.Logger, event SecurityEvent) {
	if logger == nil {
		return // Logging disabled
	}

	if event.EventType == "failure" {
		logger.Warn("authorization failed", "auth_event", event)
	} else {
		logger.Info("authorization succeeded", "auth_event", event)
	}
}

// extractAlgorithmFromToken reads the alg header without verifying anything.
// Returns "" for no token and "MALFORMED" when the header cannot be decoded.
func extractAlgorithmFromToken(token string) string {
	if token == "" {
		return ""
	}

	// an unknown alg still yields the decoded header alongside the error
	parsed, _, _ := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if parsed == nil {
		return "MALFORMED"
	}
	if alg, ok := parsed.Header["alg"].(string); ok {
		return alg
	}

	return "MALFORMED"
}
