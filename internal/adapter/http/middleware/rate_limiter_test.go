package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"todohub/pkg/config"
	"todohub/pkg/logger"
)

func newTestLimiter(t *testing.T, configs map[string]config.RateLimitConfig) *RateLimiter {
	appLogger, err := logger.New("todohub-test")

	assert.NoError(t, err)

	return NewRateLimiter(appLogger, nil, configs)
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(rl.RateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := newTestLimiter(t, map[string]config.RateLimitConfig{
		"/ping": {Requests: 3, Window: time.Minute},
	})

	router := limitedRouter(rl)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := newTestLimiter(t, map[string]config.RateLimitConfig{
		"/ping": {Requests: 2, Window: time.Minute},
	})

	router := limitedRouter(rl)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(rr, req)
	}

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimiter_RemainingHeaderCountsDown(t *testing.T) {
	rl := newTestLimiter(t, map[string]config.RateLimitConfig{
		"/ping": {Requests: 5, Window: time.Minute},
	})

	router := limitedRouter(rl)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, "5", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rr.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_SeparatesClientsByIP(t *testing.T) {
	rl := newTestLimiter(t, map[string]config.RateLimitConfig{
		"/ping": {Requests: 1, Window: time.Minute},
	})

	router := limitedRouter(rl)

	first := httptest.NewRecorder()
	reqA, _ := http.NewRequest("GET", "/ping", nil)
	reqA.Header.Set("X-Forwarded-For", "10.0.0.1")
	router.ServeHTTP(first, reqA)

	second := httptest.NewRecorder()
	reqB, _ := http.NewRequest("GET", "/ping", nil)
	reqB.Header.Set("X-Forwarded-For", "10.0.0.2")
	router.ServeHTTP(second, reqB)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestRateLimiter_PrefixMatch(t *testing.T) {
	rl := newTestLimiter(t, map[string]config.RateLimitConfig{
		"/ping": {Requests: 1, Window: time.Minute},
	})

	cfg, ok := rl.lookupConfig("/ping")

	assert.True(t, ok)
	assert.Equal(t, 1, cfg.Requests)

	_, ok = rl.lookupConfig("/other")
	assert.False(t, ok)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := newTestLimiter(t, map[string]config.RateLimitConfig{
		"/ping": {Requests: 1, Window: 30 * time.Millisecond},
	})

	router := limitedRouter(rl)

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(first, req1)
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(blocked, req2)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	time.Sleep(40 * time.Millisecond)

	fresh := httptest.NewRecorder()
	req3, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(fresh, req3)
	assert.Equal(t, http.StatusOK, fresh.Code)
}
