package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"fashionstore/auth"
	"fashionstore/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys set on the gin context by Authenticate.
const (
	UserIDKey   = "userId"
	RoleKey     = "role"
	TokenKey    = "token"
	TokenExpKey = "tokenExpiresAt"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// BearerToken extracts the token from the Authorization header. A bare token
// without the Bearer prefix is accepted as well.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// Authenticate validates the bearer token and stores its claims on the
// context. log is used when the request carries no request-scoped logger.
func Authenticate(tokens TokenParser, revoked RevocationChecker, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		blacklisted, err := revoked.IsRevoked(ctx, tokenString)
		if err != nil {
			logger.FromGin(c, log).Error("token blacklist lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if blacklisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Set(TokenKey, tokenString)
		c.Set(TokenExpKey, claims.ExpiresAt.Time)
		c.Next()
	}
}

// RequireRoles lets the request through only when the authenticated role is
// in the allow-list. It must run after Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" || !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}
