package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/keynertyc/Fullstack-Test-01/internal/auth"
)

func setupAuthRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abcdef")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	signer := auth.NewTokenManager("other-secret", time.Hour)
	token, err := signer.Generate(1, "user@example.com")
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := tokens.Generate(1, "user@example.com")
	require.NoError(t, err)

	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Generate(42, "user@example.com")
	require.NoError(t, err)

	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":42`)
	require.Contains(t, w.Body.String(), "user@example.com")
}
