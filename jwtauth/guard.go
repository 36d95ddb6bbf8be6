package jwtauth

import "time"

// Authorize decides a single request from its raw Authorization value.
//
// Checks short-circuit in order: presence, signature and claim shape, then
// role. An empty requiredRole admits any verified caller. The returned error
// is always an *AuthError and the principal is nil whenever err is non-nil.
func Authorize(cfg *Config, authorization string, requiredRole string) (*Principal, error) {
	principal, err := authorize(cfg, authorization, requiredRole)
	if err != nil {
		return nil, err
	}
	return principal, nil
}

// authorize also returns the verified principal on a role mismatch, for logging
func authorize(cfg *Config, authorization string, requiredRole string) (*Principal, error) {
	token, err := extractBearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := parseAndValidateJWT(token, cfg)
	if err != nil {
		return nil, asAuthError(err)
	}

	principal := principalFromClaims(claims)
	if requiredRole != "" && !principal.HasRole(requiredRole) {
		return principal, forbidden(principal.Role, requiredRole)
	}

	return principal, nil
}

// authorizeAndLog runs the decision and emits the matching security event
func authorizeAndLog(cfg *Config, requestID, authorization, requiredRole string) (*Principal, *AuthError) {
	startTime := time.Now()

	principal, err := authorize(cfg, authorization, requiredRole)
	latency := time.Since(startTime)

	token := tokenForLog(authorization)
	event := SecurityEvent{
		EventType:    "success",
		Timestamp:    time.Now(),
		RequestID:    requestID,
		RequiredRole: requiredRole,
		Algorithm:    extractAlgorithmFromToken(token),
		TokenPreview: token,
		Latency:      latency,
	}
	if principal != nil {
		event.UserID = principal.ID
		event.Username = principal.Username
		event.Role = principal.Role
	}

	if err != nil {
		authErr := asAuthError(err)
		event.EventType = "failure"
		event.Kind = string(authErr.Kind)
		event.FailureReason = string(authErr.Reason)
		logSecurityEvent(cfg.Logger(), event)
		return nil, authErr
	}

	logSecurityEvent(cfg.Logger(), event)
	return principal, nil
}

// tokenForLog returns the token part of an Authorization value, or "" when none can be extracted
func tokenForLog(authorization string) string {
	token, err := extractBearerToken(authorization)
	if err != nil {
		return ""
	}
	return token
}
