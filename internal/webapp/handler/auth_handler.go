package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contable-ledger/internal/webapp/middleware"
	"github.com/contable-ledger/internal/webapp/service"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	sessions service.SessionService
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, sessions service.SessionService) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Login validates the credential pair and opens a session. A rejected
// pair gets a 401 with an inline message; the client simply retries.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid login request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(c, "Invalid username or password")
			return
		}
		h.logger.Error("Login failed", "username", req.Username, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, LoginResponse{
		Token:     session.Token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout closes the current session and discards its draft
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		RespondUnauthorized(c, "")
		return
	}

	h.sessions.Logout(session.Token)
	RespondNoContent(c)
}
