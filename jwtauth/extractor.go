package jwtauth

import (
	"strings"

	"google.golang.org/grpc/metadata"
)

// extractBearerToken extracts the token from an Authorization value.
// Expected format: "Bearer <token>". Anything without an extractable token
// is reported as missing.
func extractBearerToken(authorization string) (string, error) {
	if authorization == "" {
		return "", missingToken(ReasonMissingToken, "authorization header not found")
	}

	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", missingToken(ReasonMalformedHeader, "invalid authorization header format, expected 'Bearer <token>'")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", missingToken(ReasonMissingToken, "token is empty")
	}

	return token, nil
}

// authorizationFromMetadata returns the first authorization value in gRPC metadata
func authorizationFromMetadata(md metadata.MD) string {
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
