package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/foundersof404/404founders/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(tm *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	router := gin.New()
	protected := router.Group("/api/admin")
	protected.Use(auth.Middleware(tm, logger))
	protected.GET("/ping", func(c *gin.Context) {
		info, _ := auth.AdminFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": info.Username})
	})
	return router
}

func TestMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	router := newProtectedRouter(tm)

	t.Run("NoHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NotBearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		expired := auth.NewTokenManager("test-secret", -1*time.Second)
		tok, err := expired.Generate(1, "Admin404")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		tok, err := tm.Generate(1, "Admin404")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Admin404", body["username"])
	})
}
