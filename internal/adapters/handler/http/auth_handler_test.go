package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/lucabarzi/ritmo/internal/adapters/handler/http"
	"github.com/lucabarzi/ritmo/internal/adapters/repository"
	"github.com/lucabarzi/ritmo/internal/core/services"
)

func setupAuthRouter() (*gin.Engine, *services.TokenService) {
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewInMemoryUserRepository()
	authSvc := services.NewAuthService(userRepo)
	tokenSvc := services.NewTokenService("test-secret", "ritmo", time.Hour, userRepo)

	r := gin.New()
	api := r.Group("/api/v1")
	adapterHTTP.NewAuthHandler(authSvc, tokenSvc).RegisterRoutes(api)

	return r, tokenSvc
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req, err := http.NewRequest("POST", path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: 201 with the new user", func(t *testing.T) {
		r, _ := setupAuthRouter()

		w := postJSON(t, r, "/api/v1/auth/register", map[string]string{
			"email":    "luca@example.com",
			"password": "s3cret-pass",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeJSON(t, w)
		assert.Equal(t, "luca@example.com", body["email"])
		assert.NotEmpty(t, body["id"])
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Conflict: 409 on duplicate email", func(t *testing.T) {
		r, _ := setupAuthRouter()

		creds := map[string]string{"email": "luca@example.com", "password": "s3cret-pass"}
		require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/v1/auth/register", creds).Code)

		w := postJSON(t, r, "/api/v1/auth/register", creds)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Validation: 400 on malformed email", func(t *testing.T) {
		r, _ := setupAuthRouter()

		w := postJSON(t, r, "/api/v1/auth/register", map[string]string{
			"email":    "not-an-email",
			"password": "s3cret-pass",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Validation: 400 on short password", func(t *testing.T) {
		r, _ := setupAuthRouter()

		w := postJSON(t, r, "/api/v1/auth/register", map[string]string{
			"email":    "luca@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	r, tokenSvc := setupAuthRouter()

	creds := map[string]string{"email": "luca@example.com", "password": "s3cret-pass"}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/v1/auth/register", creds).Code)

	t.Run("Success: 200 with a valid token", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/auth/login", creds)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeJSON(t, w)
		token, ok := body["token"].(string)
		require.True(t, ok)

		userID, err := tokenSvc.ValidateToken(token)
		require.NoError(t, err)
		assert.NotEmpty(t, userID)
	})

	t.Run("Security: 401 on wrong password", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/auth/login", map[string]string{
			"email":    "luca@example.com",
			"password": "wrong-pass",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Security: 401 on unknown email", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "s3cret-pass",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
