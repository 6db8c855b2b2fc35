package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"todohub/internal/core/telemetry"
	"todohub/pkg"
	"todohub/pkg/config"
	"todohub/pkg/logger"
)

// RateLimiter enforces fixed-window per-client limits. Windows live in a
// go-cache store keyed by route and client identity, so protected routes
// count per user while public ones count per ip.
type RateLimiter struct {
	cache   *gocache.Cache
	config  map[string]config.RateLimitConfig
	logger  *logger.AppLogger
	metrics *telemetry.AppMetrics
	mutex   sync.Mutex
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

var defaultRateLimit = config.RateLimitConfig{
	Requests: 60,
	Window:   time.Minute,
}

func NewRateLimiter(appLogger *logger.AppLogger, metrics *telemetry.AppMetrics, configs map[string]config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		config:  configs,
		logger:  appLogger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rl.lookupConfig(path)

		if !exists {
			cfg = defaultRateLimit
		}

		key, keyType := rl.clientKey(c, path)

		allowed, remaining, resetTime := rl.check(key, cfg)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, keyType)
			}

			rl.logger.Warn(c.Request.Context(), "Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", cfg.Requests),
				zap.Duration("window", cfg.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", cfg.Requests, cfg.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, keyType)
		}

		c.Next()
	}
}

// lookupConfig matches the longest configured prefix so one entry can cover
// a whole route group.
func (rl *RateLimiter) lookupConfig(path string) (config.RateLimitConfig, bool) {
	if cfg, ok := rl.config[path]; ok {
		return cfg, true
	}

	var best string
	var found config.RateLimitConfig

	for prefix, cfg := range rl.config {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
			found = cfg
		}
	}

	return found, best != ""
}

func (rl *RateLimiter) clientKey(c *gin.Context, path string) (string, string) {
	if userID, exists := c.Get("x-user-id"); exists {
		return fmt.Sprintf("rate_limit:%s:user_%v", path, userID), "user"
	}

	return fmt.Sprintf("rate_limit:%s:%s", path, pkg.GetClientIP(c)), "ip"
}

func (rl *RateLimiter) check(key string, cfg config.RateLimitConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if cached, found := rl.cache.Get(key); found {
		entry := cached.(rateLimitEntry)

		if now.After(entry.ResetTime) {
			resetTime := now.Add(cfg.Window)
			rl.cache.Set(key, rateLimitEntry{Count: 1, ResetTime: resetTime}, cfg.Window)
			return true, cfg.Requests - 1, resetTime
		}

		if entry.Count >= cfg.Requests {
			return false, 0, entry.ResetTime
		}

		entry.Count++
		rl.cache.Set(key, entry, gocache.DefaultExpiration)

		return true, cfg.Requests - entry.Count, entry.ResetTime
	}

	resetTime := now.Add(cfg.Window)
	rl.cache.Set(key, rateLimitEntry{Count: 1, ResetTime: resetTime}, cfg.Window)

	return true, cfg.Requests - 1, resetTime
}

func (rl *RateLimiter) SetConfig(path string, cfg config.RateLimitConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[path] = cfg
}
