package jwtauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// parseAndValidateJWT verifies the token signature and decodes its claims.
// Every failure is returned as a KindTokenInvalid AuthError.
func parseAndValidateJWT(tokenString string, cfg *Config) (*Claims, error) {
	// numbers stay json.Number so large ids are not rounded through float64
	parser := jwt.NewParser(jwt.WithLeeway(cfg.ClockSkewLeeway()), jwt.WithJSONNumber())

	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return validateAlgorithm(token, cfg)
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	if !token.Valid {
		return nil, invalidToken(ReasonInvalidSignature, "token is invalid", nil)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, invalidToken(ReasonInvalidClaims, "invalid claims format", nil)
	}

	return mapJWTClaimsToClaims(mapClaims)
}

// validateAlgorithm ensures the token uses the configured algorithm and returns the key.
// No negotiation happens: a token claiming any other algorithm is rejected.
func validateAlgorithm(token *jwt.Token, cfg *Config) (interface{}, error) {
	alg, _ := token.Header["alg"].(string)

	if strings.EqualFold(alg, "none") {
		return nil, invalidToken(ReasonNoneAlgorithm, "none algorithm not allowed", nil)
	}

	if alg != cfg.Algorithm() || token.Method.Alg() != cfg.Algorithm() {
		return nil, invalidToken(
			ReasonUnsupportedAlgorithm,
			fmt.Sprintf("algorithm %s not supported (expected %s)", alg, cfg.Algorithm()),
			nil,
		)
	}

	return cfg.secret, nil
}

// classifyParseError converts jwt library errors into AuthErrors
func classifyParseError(err error) *AuthError {
	// errors raised from the keyfunc are wrapped by the library
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return invalidToken(ReasonExpired, "token has expired", err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return invalidToken(ReasonExpired, "token is not valid yet", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return invalidToken(ReasonInvalidSignature, "invalid signature", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return invalidToken(ReasonMalformed, "malformed token", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return invalidToken(ReasonUnsupportedAlgorithm, "token signing method is unavailable", err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return invalidToken(ReasonInvalidClaims, "invalid registered claims", err)
	}

	return invalidToken(ReasonMalformed, "malformed token", err)
}

// mapJWTClaimsToClaims converts jwt.MapClaims to Claims, requiring id, username and role
func mapJWTClaimsToClaims(mapClaims jwt.MapClaims) (*Claims, error) {
	id, err := integerClaim(mapClaims, "id")
	if err != nil {
		return nil, err
	}
	username, err := stringClaim(mapClaims, "username")
	if err != nil {
		return nil, err
	}
	role, err := stringClaim(mapClaims, "role")
	if err != nil {
		return nil, err
	}

	return &Claims{ID: id, Username: username, Role: role}, nil
}

func integerClaim(mapClaims jwt.MapClaims, name string) (int64, error) {
	raw, ok := mapClaims[name]
	if !ok {
		return 0, invalidToken(ReasonInvalidClaims, "required claim missing: "+name, nil)
	}

	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		// accept integral forms such as 1.0 or 1e3 while they stay exact
		f, err := v.Float64()
		if err != nil || !isExactInteger(f) {
			return 0, invalidToken(ReasonInvalidClaims, fmt.Sprintf("claim %s must be an integer", name), err)
		}
		return int64(f), nil
	case float64:
		if !isExactInteger(v) {
			return 0, invalidToken(ReasonInvalidClaims, fmt.Sprintf("claim %s must be an integer", name), nil)
		}
		return int64(v), nil
	}

	return 0, invalidToken(ReasonInvalidClaims, fmt.Sprintf("claim %s must be an integer, got %T", name, raw), nil)
}

// maxExactInteger is the largest magnitude a float64 holds without rounding
const maxExactInteger = 1 << 53

func isExactInteger(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) <= maxExactInteger
}

func stringClaim(mapClaims jwt.MapClaims, name string) (string, error) {
	raw, ok := mapClaims[name]
	if !ok {
		return "", invalidToken(ReasonInvalidClaims, "required claim missing: "+name, nil)
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalidToken(ReasonInvalidClaims, fmt.Sprintf("claim %s must be a string, got %T", name, raw), nil)
	}
	return s, nil
}
