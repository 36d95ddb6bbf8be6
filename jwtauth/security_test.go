package jwtauth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// TestSignatureVerificationWithWrongKey tests that tokens signed with another secret are rejected
func TestSignatureVerificationWithWrongKey(t *testing.T) {
	cfg := mustCreateConfig(t, WithHS256(newTestSecret(t)))

	token := signHS256(t, newTestSecret(t), identityClaims(1, "admin1", RoleAdmin))

	_, err := parseAndValidateJWT(token, cfg)
	requireAuthError(t, err, KindTokenInvalid, ReasonInvalidSignature)
}

// TestTamperedPayloadRejection tests that elevating the role in a signed token is detected
func TestTamperedPayloadRejection(t *testing.T) {
	secret := newTestSecret(t)
	cfg := mustCreateConfig(t, WithHS256(secret))

	token := signHS256(t, secret, identityClaims(2, "bob", RoleUser))
	parts := strings.Split(token, ".")
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"id":2,"username":"bob","role":"admin"}`))

	_, err := parseAndValidateJWT(strings.Join(parts, "."), cfg)
	requireAuthError(t, err, KindTokenInvalid, ReasonInvalidSignature)
}

// TestAlgorithmConfusionPrevention tests that a public key used as an HMAC secret does not verify
func TestAlgorithmConfusionPrevention(t *testing.T) {
	cfg := mustCreateConfig(t, WithHS256(newTestSecret(t)))

	privateKey := mustGenerateRSAKey(t)
	pubBytes := publicKeyToBytes(t, privateKey)

	t.Run("HS256 signed with RSA public key bytes", func(t *testing.T) {
		token := signHS256(t, pubBytes, identityClaims(1, "admin1", RoleAdmin))
		_, err := parseAndValidateJWT(token, cfg)
		requireAuthError(t, err, KindTokenInvalid, ReasonInvalidSignature)
	})

	t.Run("RS256 signed with RSA private key", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodRS256, privateKey, identityClaims(1, "admin1", RoleAdmin))
		_, err := parseAndValidateJWT(token, cfg)
		requireAuthError(t, err, KindTokenInvalid, ReasonUnsupportedAlgorithm)
	})

	t.Run("header alg rewritten to HS256 on RS256 token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodRS256, privateKey, identityClaims(1, "admin1", RoleAdmin))
		parts := strings.Split(token, ".")
		parts[0] = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
		_, err := parseAndValidateJWT(strings.Join(parts, "."), cfg)
		requireAuthError(t, err, KindTokenInvalid, ReasonInvalidSignature)
	})
}

// TestInternalErrorsNotExposed verifies library errors never reach the public message
func TestInternalErrorsNotExposed(t *testing.T) {
	cfg := mustCreateConfig(t, WithHS256(newTestSecret(t)))

	_, err := Authorize(cfg, bearer("abc.def"), RoleAdmin)
	authErr := requireAuthError(t, err, KindTokenInvalid, ReasonMalformed)

	if authErr.Internal == nil {
		t.Fatal("Expected the library error to be preserved for unwrapping")
	}
	if authErr.PublicMessage() != MessageTokenInvalid {
		t.Errorf("Expected public message %q, got %q", MessageTokenInvalid, authErr.PublicMessage())
	}
}

func publicKeyToBytes(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal public key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}
