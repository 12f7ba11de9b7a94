package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbanpantry/internal/auth"
	"urbanpantry/internal/models"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewManager("test-secret", time.Hour)
	router := gin.New()
	router.GET("/private", RequireAuth(tokens), func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID})
	})
	router.GET("/admin", RequireAuth(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tokens
}

func TestRequireAuthMissingToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestRequireAuthBadFormat(t *testing.T) {
	router, tokens := newAuthRouter(t)
	token, err := tokens.Issue("u1", models.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", token) // no Bearer prefix
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token format is invalid")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token is not valid")
}

func TestRequireAuthValidToken(t *testing.T) {
	router, tokens := newAuthRouter(t)
	token, err := tokens.Issue("u1", models.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRequireAdminRejectsPlainUser(t *testing.T) {
	router, tokens := newAuthRouter(t)
	token, err := tokens.Issue("u1", models.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router, tokens := newAuthRouter(t)
	token, err := tokens.Issue("a1", models.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentityFromMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := IdentityFrom(c)
	assert.False(t, ok)
}
