package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hounds1/Mosk-Server/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		id, _ := c.Get(StoreIDKey)
		c.JSON(http.StatusOK, gin.H{"storeId": id})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	auth.Init("middleware-test-secret")
	router := newProtectedRouter()

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storeId":7`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	auth.Init("middleware-test-secret")
	router := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadScheme(t *testing.T) {
	auth.Init("middleware-test-secret")
	router := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	auth.Init("middleware-test-secret")
	router := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.real.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
