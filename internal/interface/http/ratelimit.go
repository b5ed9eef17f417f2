package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/exchanger/internal/infra/config"
)

// idleClientTTL is how long a quiet client's bucket is kept.
const idleClientTTL = 5 * time.Minute

// rateLimitMiddleware guards the upstream quota with a token bucket per
// client IP. Rejections carry Retry-After.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	buckets := newClientBuckets(float64(cfg.RequestsPerMinute)/60, float64(cfg.Burst))
	return func(c *gin.Context) {
		ip := c.ClientIP()
		wait, ok := buckets.take(ip)
		if ok {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path, "retry_after", wait.String())
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

type bucket struct {
	tokens  float64
	updated time.Time
}

type clientBuckets struct {
	mu        sync.Mutex
	perSecond float64
	capacity  float64
	clients   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func newClientBuckets(perSecond, capacity float64) *clientBuckets {
	if capacity < 1 {
		capacity = 1
	}
	return &clientBuckets{
		perSecond: perSecond,
		capacity:  capacity,
		clients:   make(map[string]*bucket),
		now:       time.Now,
	}
}

// take spends one token for key. When the bucket is empty it reports how
// long until the next token is available.
func (b *clientBuckets) take(key string) (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweep(now)

	bk, ok := b.clients[key]
	if !ok {
		bk = &bucket{tokens: b.capacity, updated: now}
		b.clients[key] = bk
	}
	if elapsed := now.Sub(bk.updated).Seconds(); elapsed > 0 {
		bk.tokens = math.Min(b.capacity, bk.tokens+elapsed*b.perSecond)
	}
	bk.updated = now

	if bk.tokens >= 1 {
		bk.tokens--
		return 0, true
	}
	missing := 1 - bk.tokens
	return time.Duration(missing / b.perSecond * float64(time.Second)), false
}

func (b *clientBuckets) sweep(now time.Time) {
	if now.Sub(b.lastSweep) < time.Minute {
		return
	}
	b.lastSweep = now
	for key, bk := range b.clients {
		if now.Sub(bk.updated) > idleClientTTL {
			delete(b.clients, key)
		}
	}
}
