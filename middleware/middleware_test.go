package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/models"
	"travel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString("user_id")})
	})
	r.GET("/admin", AuthMiddleware(secret), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	userToken, err := utils.GenerateToken(secret, time.Hour, "u1", "u1@example.com", models.RoleUser)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken(secret, time.Hour, "a1", "a1@example.com", models.RoleAdmin)
	require.NoError(t, err)
	foreign, err := utils.GenerateToken("other", time.Hour, "u1", "u1@example.com", models.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "Token "+userToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "Bearer "+foreign).Code)

	w := do(r, "/me", "Bearer "+userToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", "Bearer "+adminToken).Code)
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t,
		[]string{"http://localhost:5173", "http://localhost:3000", "https://travel.example.com", "https://admin.example.com"},
		AllowedOrigins(" https://travel.example.com/, https://admin.example.com,http://localhost:3000", false))

	assert.Equal(t, []string{"https://travel.example.com"}, AllowedOrigins("https://travel.example.com", true))
	assert.Empty(t, AllowedOrigins("", true))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://travel.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	request := func(method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/ping", nil)
		req.Header.Set("Origin", origin)
		if method == http.MethodOptions {
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := request(http.MethodGet, "https://travel.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://travel.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(http.MethodOptions, "https://travel.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	w = request(http.MethodGet, "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
