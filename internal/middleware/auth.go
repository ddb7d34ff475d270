package middleware

import (
	"strings"

	"gathero_backend/internal/auth"
	"gathero_backend/internal/logger"
	"gathero_backend/internal/models"
	"gathero_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth validates the bearer token and stores the caller's identity on
// the gin context and the request context.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. It must run
// after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(models.UserRoleAdmin) {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
