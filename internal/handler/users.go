package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wang-tianhao/vibrant-userguard/internal/user"
	"github.com/Wang-tianhao/vibrant-userguard/jwtauth"
)

// ListUsers returns the full user list. It must be mounted behind jwtauth.RequireAdmin.
func ListUsers(store user.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		users, err := store.ListUsers(ctx)
		if err != nil {
			requestID, _ := jwtauth.GetRequestID(ctx)
			logger.Error("failed to list users", "request_id", requestID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list users"})
			return
		}

		if principal, ok := jwtauth.GetPrincipal(ctx); ok {
			logger.Debug("listed users", "user_id", principal.ID, "count", len(users))
		}

		c.JSON(http.StatusOK, users)
	}
}

// Health reports process liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
