// Package handler exposes the authentication endpoints. Credential decisions
// belong to the backend; these handlers forward the submission, and on
// success turn the returned token and role into the session cookie triplet.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hiregate/internal/backend"
	"hiregate/internal/session"
)

// API is the slice of the backend client the handlers use.
type API interface {
	SubmitAuth(ctx context.Context, path string, payload any) (backend.AuthResult, backend.Status)
}

type Handler struct {
	api      API
	sessions *session.Manager
	log      zerolog.Logger
}

func NewHandler(api API, sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{api: api, sessions: sessions, log: log}
}

// RegisterRoutes mounts the auth endpoints. The POST paths match the pages
// the request gate rate limits.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)
	r.POST("/auth/logout", h.Logout)
}

// establishSession persists the cookie triplet from a successful auth result.
// A backend success without usable session material is treated as an upstream
// fault, never a half-set session.
func (h *Handler) establishSession(c *gin.Context, res backend.AuthResult) bool {
	if res.Token == "" || !res.User.Role.Valid() {
		h.log.Error().Str("role", string(res.User.Role)).Msg("auth response missing session material")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Authentication service returned an unexpected response.",
		})
		return false
	}

	h.sessions.Persist(c.Writer, session.Session{
		Token: res.Token,
		Role:  res.User.Role,
	})
	return true
}

// reject maps a backend rejection or outage onto a client response without
// leaking which upstream check failed.
func reject(c *gin.Context, st backend.Status, message string) {
	if st == backend.StatusUnreachable {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Authentication service is unavailable. Please try again.",
		})
		return
	}
	if message == "" {
		message = "Request could not be completed."
	}
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
