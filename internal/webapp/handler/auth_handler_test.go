package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contable-ledger/internal/auth"
	"github.com/contable-ledger/internal/webapp/middleware"
	"github.com/contable-ledger/internal/webapp/service"
)

func setupAuthRouter(sessions service.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	handler := NewAuthHandler(logger, sessions)

	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", middleware.RequireSession(sessions), handler.Logout)
	return r
}

func newSessions() service.SessionService {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return service.NewSessionService(logger, auth.NewStaticAuthenticator("ana:secreto"), time.Hour)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := setupAuthRouter(newSessions())
		rr := doJSON(router, http.MethodPost, "/auth/login", LoginRequest{Username: "ana", Password: "secreto"})

		require.Equal(t, http.StatusOK, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		dataBytes, _ := json.Marshal(response.Data)
		var login LoginResponse
		require.NoError(t, json.Unmarshal(dataBytes, &login))
		assert.Equal(t, "ana", login.Username)
		assert.NotEmpty(t, login.Token)
		assert.NotEmpty(t, login.ExpiresAt)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		router := setupAuthRouter(newSessions())
		rr := doJSON(router, http.MethodPost, "/auth/login", LoginRequest{Username: "ana", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		router := setupAuthRouter(newSessions())
		rr := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"username": "ana"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := newSessions()
	session, err := sessions.Login("ana", "secreto")
	require.NoError(t, err)

	router := setupAuthRouter(sessions)

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rr := doRequest(router, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// the token no longer resolves
	req, _ = http.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rr = doRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
