package jwtauth

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	// Set Gin to test mode to suppress logs
	gin.SetMode(gin.TestMode)
}

// Helper functions

func newTestSecret(t testing.TB) []byte {
	t.Helper()
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}
	return secret
}

func mustCreateConfig(t testing.TB, opts ...ConfigOption) *Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	return cfg
}

func identityClaims(id int64, username, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"id":       id,
		"username": username,
		"role":     role,
	}
}

func signToken(t testing.TB, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	tokenString, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return tokenString
}

func signHS256(t testing.TB, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	return signToken(t, jwt.SigningMethodHS256, secret, claims)
}

func mustGenerateRSAKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	return key
}

func bearer(token string) string {
	return "Bearer " + token
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// requireAuthError asserts err is an *AuthError with the given kind and reason.
// An empty reason matches any reason.
func requireAuthError(t *testing.T, err error, kind ErrorKind, reason Reason) *AuthError {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", kind)
	}
	authErr, ok := err.(*AuthError)
	if !ok {
		t.Fatalf("Expected *AuthError, got %T: %v", err, err)
	}
	if authErr.Kind != kind {
		t.Errorf("Expected kind %s, got %s (%v)", kind, authErr.Kind, authErr)
	}
	if reason != "" && authErr.Reason != reason {
		t.Errorf("Expected reason %s, got %s (%v)", reason, authErr.Reason, authErr)
	}
	return authErr
}
