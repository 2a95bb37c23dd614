package handler

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/http/dto"
	"bizdir.app/directory/internal/http/middleware"
	"bizdir.app/directory/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AuthorizationURL returns the identity provider login URL and the state the
// client must check on the callback.
func (h *AuthHandler) AuthorizationURL(c *gin.Context) {
	ctx := c.Request.Context()

	state := c.Query("state")
	if state == "" {
		var err error
		if state, err = generateState(); err != nil {
			slog.ErrorContext(ctx, "failed to generate state", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login", "code": "internal"})
			return
		}
	}

	url, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login", "code": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "state": state})
}

func (h *AuthHandler) Exchange(c *gin.Context) {
	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: code is required")
		return
	}

	ctx := c.Request.Context()
	session, err := h.authService.Exchange(ctx, req.Code)
	if err != nil {
		respondError(c, err, "failed to complete login")
		return
	}

	slog.InfoContext(ctx, "user logged in", "user_id", session.User.ID)
	c.JSON(http.StatusOK, dto.ToAuthResponse(session))
}

func (h *AuthHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c.Request.Context())
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "code": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.ToMeResponse(principal))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "code": "unauthenticated"})
		return
	}

	logoutURL, err := h.authService.Logout(ctx, principal.Session)
	if err != nil {
		respondError(c, err, "failed to log out")
		return
	}

	resp := gin.H{"message": "logged out"}
	if logoutURL != "" {
		resp["logout_url"] = logoutURL
	}
	c.JSON(http.StatusOK, resp)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
