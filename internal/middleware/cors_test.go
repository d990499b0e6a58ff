package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"petledger/internal/middleware"
)

func corsEngine(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(origins))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func corsRequest(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, "/test", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowedOrigin(t *testing.T) {
	w := corsRequest(corsEngine([]string{"https://app.example.com", "http://localhost:3000"}), http.MethodGet, "https://app.example.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	w := corsRequest(corsEngine([]string{"https://app.example.com"}), http.MethodGet, "https://evil.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightAllowed(t *testing.T) {
	w := corsRequest(corsEngine([]string{"https://app.example.com"}), http.MethodOptions, "https://app.example.com")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORS_PreflightDisallowed(t *testing.T) {
	w := corsRequest(corsEngine([]string{"https://app.example.com"}), http.MethodOptions, "https://evil.com")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	w := corsRequest(corsEngine([]string{"*"}), http.MethodGet, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	w := corsRequest(corsEngine([]string{"*"}), http.MethodGet, "https://anywhere.example")

	assert.Equal(t, "https://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyOriginsList(t *testing.T) {
	w := corsRequest(corsEngine(nil), http.MethodGet, "https://app.example.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
