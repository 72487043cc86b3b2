package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunkrishnadas/expense-tracker/internal/auth"
	"github.com/arjunkrishnadas/expense-tracker/models"
)

const testSecret = "test-secret"

func testRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	w := doRequest(t, testRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	w := doRequest(t, testRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredBadToken(t *testing.T) {
	w := doRequest(t, testRouter(), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, &models.User{ID: 42, Role: "user"})
	require.NoError(t, err)

	w := doRequest(t, testRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestAdminOnlyRejectsUserRole(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, &models.User{ID: 1, Role: "user"})
	require.NoError(t, err)

	w := doRequest(t, testRouter(AdminOnly()), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, &models.User{ID: 1, Role: "admin"})
	require.NoError(t, err)

	w := doRequest(t, testRouter(AdminOnly()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDEchoedInResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))

	// generated when the client sends none
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w2.Header().Get("X-Request-ID"))
}
