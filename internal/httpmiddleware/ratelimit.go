package httpmiddleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a per-IP fixed window in redis so the limit holds
// across replicas. When redis is unreachable it falls back to an in-process
// token bucket rather than letting traffic through unchecked.
type RateLimiter struct {
	client   *redis.Client
	perMin   int
	fallback *tokenBucket
}

// NewRateLimiter creates a limiter allowing perMinute requests per client IP.
func NewRateLimiter(client *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		client:   client,
		perMin:   perMinute,
		fallback: newTokenBucket(perMinute, perMinute),
	}
}

// GinMiddleware returns a gin handler enforcing the limit.
func (l *RateLimiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(c.Request.Context(), ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Terlalu banyak permintaan"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, key string) bool {
	if l.client == nil {
		return l.fallback.allow(key)
	}
	window := time.Now().Unix() / 60
	redisKey := "absensi:ratelimit:" + key + ":" + time.Unix(window*60, 0).UTC().Format("1504")

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return l.fallback.allow(key)
	}
	return count.Val() <= int64(l.perMin)
}

type tokenBucket struct {
	capacity int
	rate     int
	mu       sync.Mutex
	state    map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

func newTokenBucket(capacity, perMinute int) *tokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &tokenBucket{capacity: capacity, rate: perMinute, state: make(map[string]*bucket)}
}

func (l *tokenBucket) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.state[key]
	now := time.Now()
	if !ok {
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true
	}
	refill := int(now.Sub(b.last).Minutes() * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
