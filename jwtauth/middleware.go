package jwtauth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in and out of HTTP requests
const RequestIDHeader = "X-Request-ID"

// RequireRole returns a Gin middleware that admits only verified callers holding role.
// An empty role admits any verified caller.
func RequireRole(cfg *Config, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := requestIDFrom(c)

		principal, authErr := authorizeAndLog(cfg, requestID, c.GetHeader("Authorization"), role)
		if authErr != nil {
			c.AbortWithStatusJSON(authErr.StatusCode(), buildErrorResponse(authErr))
			return
		}

		// Inject principal and request ID into context
		ctx := WithPrincipal(c.Request.Context(), principal)
		ctx = WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin returns a Gin middleware that admits only admin callers
func RequireAdmin(cfg *Config) gin.HandlerFunc {
	return RequireRole(cfg, RoleAdmin)
}

// RequestID returns a Gin middleware that honors or generates X-Request-ID,
// echoes it on the response and stores it in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := requestIDFrom(c)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// requestIDFrom returns the request ID from context, header, or a fresh UUID
func requestIDFrom(c *gin.Context) string {
	if id, ok := GetRequestID(c.Request.Context()); ok && id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// buildErrorResponse constructs the caller-visible error body.
// Only the normalized message is exposed.
func buildErrorResponse(err *AuthError) gin.H {
	return gin.H{"message": err.PublicMessage()}
}
