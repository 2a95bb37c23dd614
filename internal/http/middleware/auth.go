package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/service"
)

type contextKey string

const principalContextKey contextKey = "principal"

// RequireAuth resolves the bearer token into a service.Principal stored on
// the request context. It aborts with 401 when the token is missing or no
// longer valid.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "code": "unauthenticated"})
			return
		}

		ctx := c.Request.Context()
		principal, err := auth.ValidateToken(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "code": "session_expired"})
			case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "code": "invalid_token"})
			default:
				slog.ErrorContext(ctx, "failed to validate token", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session", "code": "internal"})
			}
			return
		}

		ctx = context.WithValue(ctx, principalContextKey, principal)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &principal.User.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetPrincipal returns the principal stored by RequireAuth, or nil.
func GetPrincipal(ctx context.Context) *service.Principal {
	p, _ := ctx.Value(principalContextKey).(*service.Principal)
	return p
}

// WithPrincipal stores p on ctx the way RequireAuth does.
func WithPrincipal(ctx context.Context, p *service.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// RequireAdminAPIKey accepts the key in X-Admin-API-Key or as a bearer token.
// Admin routes are disabled when no key is configured.
func RequireAdminAPIKey(adminAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminAPIKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin API not configured", "code": "admin_disabled"})
			return
		}

		apiKey := c.GetHeader("X-Admin-API-Key")
		if apiKey == "" {
			apiKey = bearerToken(c.GetHeader("Authorization"))
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(adminAPIKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key", "code": "unauthenticated"})
			return
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
