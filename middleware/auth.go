package middleware

import (
	"net/http"
	"slices"
	"strings"

	"bookiteasy/models"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// JWTAuthMiddleware resolves the bearer token into a models.Identity stored on the context.
// With optional set, requests without a token pass through anonymously, but a bad token is still rejected.
func JWTAuthMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && optional {
			c.Next()
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		identity, err := utils.ParseIdentity(strings.TrimSpace(tokenString))
		if err != nil {
			requestLogger(c).Info("Rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(identityKey, identity)
		if l, exists := c.Get(loggerKey); exists {
			if logger, ok := l.(*zap.Logger); ok {
				c.Set(loggerKey, logger.With(zap.String("userID", identity.UserID)))
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the identity set by JWTAuthMiddleware, or the zero identity.
func IdentityFrom(c *gin.Context) models.Identity {
	if v, exists := c.Get(identityKey); exists {
		if identity, ok := v.(models.Identity); ok {
			return identity
		}
	}
	return models.Identity{}
}

// RequireRole lets only callers with one of roles through. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity.IsZero() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !slices.Contains(roles, identity.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
