package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spm_tracker_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIdentityHeaderAndFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Tracker.DefaultUserID = "local-student"

	router := gin.New()
	router.Use(Identity(cfg))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-ID", "alice")
	router.ServeHTTP(w, req)
	assert.Equal(t, "alice", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, "local-student", w.Body.String())

	// 空白头按缺省处理
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-ID", "   ")
	router.ServeHTTP(w, req)
	assert.Equal(t, "local-student", w.Body.String())
}
