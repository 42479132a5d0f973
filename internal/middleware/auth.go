package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/laakri/DevCollab/internal/auth"
	"github.com/laakri/DevCollab/internal/logger"
	"github.com/laakri/DevCollab/pkg/apperrors"
	"github.com/laakri/DevCollab/pkg/contextkeys"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies the bearer token and stores its claims on the
// context. It never touches the database.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			apperrors.AbortWithError(c, apperrors.ErrMissingToken)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenStr == "" {
			apperrors.AbortWithError(c, apperrors.ErrMissingToken)
			return
		}

		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected bearer token", "error", err, "path", c.Request.URL.Path)
			if errors.Is(err, auth.ErrTokenExpired) {
				apperrors.AbortWithError(c, apperrors.ErrTokenExpired)
				return
			}
			apperrors.AbortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID())
		c.Set(contextkeys.UsernameKey, claims.Username)
		c.Set(contextkeys.RoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID()))
		logger.CtxDebug(c.Request.Context(), "Authenticated request", "role", claims.Role, "path", c.Request.URL.Path)

		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
// Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(contextkeys.RoleKey)
		if _, ok := roleSet[role]; !ok {
			apperrors.AbortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}
