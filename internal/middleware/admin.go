package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoddle/coins_backend/internal/apperrors"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
)

// AdminRequired creates a Gin middleware that allows only admin users past.
// It must run after AuthMiddleware so the user ID is in the context.
func AdminRequired(authSvc portssvc.AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := authSvc.RequireAdmin(c.Request.Context(), userID); err != nil {
			logger := GetLoggerFromCtx(c.Request.Context())
			switch {
			case errors.Is(err, apperrors.ErrForbidden):
				logger.Warn("non-admin user blocked from admin route", "user_id", userID)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			case errors.Is(err, apperrors.ErrUnauthorized):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			default:
				logger.Error("admin check failed", "user_id", userID, "error", err.Error())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		c.Next()
	}
}
