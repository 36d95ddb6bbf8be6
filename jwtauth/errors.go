package jwtauth

import (
	"errors"
	"fmt"
	"net/http"
	"unicode"
	"unicode/utf8"
)

// ErrorKind is the public outcome of a rejected request
type ErrorKind string

const (
	KindTokenMissing ErrorKind = "TokenMissing"
	KindTokenInvalid ErrorKind = "TokenInvalid"
	KindForbidden    ErrorKind = "Forbidden"
)

// Reason is an internal diagnostic code. It is logged, never returned to callers.
type Reason string

const (
	ReasonMissingToken         Reason = "MISSING_TOKEN"
	ReasonMalformedHeader      Reason = "MALFORMED_HEADER"
	ReasonMalformed            Reason = "MALFORMED"
	ReasonInvalidSignature     Reason = "INVALID_SIGNATURE"
	ReasonExpired              Reason = "EXPIRED"
	ReasonUnsupportedAlgorithm Reason = "UNSUPPORTED_ALGORITHM"
	ReasonNoneAlgorithm        Reason = "NONE_ALGORITHM"
	ReasonInvalidClaims        Reason = "INVALID_CLAIMS"
	ReasonInsufficientRole     Reason = "INSUFFICIENT_ROLE"
)

const (
	MessageTokenMissing = "Token is missing"
	MessageTokenInvalid = "Token is invalid"
)

// AuthError is returned by Authorize for every rejected request
type AuthError struct {
	Kind         ErrorKind
	Reason       Reason
	Message      string // diagnostic detail, log only
	RequiredRole string // set for KindForbidden
	Internal     error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("[%s/%s] %s", e.Kind, e.Reason, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *AuthError) Unwrap() error {
	return e.Internal
}

// StatusCode returns the HTTP status for the error kind
func (e *AuthError) StatusCode() int {
	if e.Kind == KindForbidden {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// PublicMessage returns the caller-visible message for the error kind.
// Internal details never appear here.
func (e *AuthError) PublicMessage() string {
	switch e.Kind {
	case KindTokenMissing:
		return MessageTokenMissing
	case KindForbidden:
		return roleRequiredMessage(e.RequiredRole)
	default:
		return MessageTokenInvalid
	}
}

func roleRequiredMessage(role string) string {
	if role == "" {
		role = RoleAdmin
	}
	first, size := utf8.DecodeRuneInString(role)
	return string(unicode.ToUpper(first)) + role[size:] + " access required"
}

func missingToken(reason Reason, message string) *AuthError {
	return &AuthError{Kind: KindTokenMissing, Reason: reason, Message: message}
}

func invalidToken(reason Reason, message string, internal error) *AuthError {
	return &AuthError{Kind: KindTokenInvalid, Reason: reason, Message: message, Internal: internal}
}

func forbidden(role, required string) *AuthError {
	return &AuthError{
		Kind:         KindForbidden,
		Reason:       ReasonInsufficientRole,
		Message:      fmt.Sprintf("role %q does not satisfy required role %q", role, required),
		RequiredRole: required,
	}
}

// asAuthError normalizes any error into an AuthError. Unknown errors become
// KindTokenInvalid so nothing escapes the guard unclassified.
func asAuthError(err error) *AuthError {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	return invalidToken(ReasonMalformed, "unclassified verification failure", err)
}

// ConfigError reports an invalid guard configuration
type ConfigError struct {
	Message  string
	Internal error
}

func (e *ConfigError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("jwtauth config: %s: %v", e.Message, e.Internal)
	}
	return "jwtauth config: " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Internal
}
