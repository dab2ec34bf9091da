package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request from key is allowed now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps a token bucket per key in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perMin   int
}

func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 100
	}
	return &MemoryLimiter{limiters: make(map[string]*rate.Limiter), perMin: perMinute}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	limiter, exists := m.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.perMin)), m.perMin)
		m.limiters[key] = limiter
	}
	m.mu.Unlock()
	return limiter.Allow(), nil
}

// RedisLimiter is a fixed one-minute window counter shared by every instance.
type RedisLimiter struct {
	client *redis.Client
	perMin int
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, perMinute int) *RedisLimiter {
	if perMinute <= 0 {
		perMinute = 100
	}
	return &RedisLimiter{client: client, perMin: perMinute, now: time.Now}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := r.now().Unix() / 60
	redisKey := "ratelimit:" + key + ":" + strconv.FormatInt(window, 10)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(r.perMin), nil
}

// RateLimitMiddleware limits requests per client IP. When the primary limiter
// errors (e.g. Redis is down) the fallback decides instead.
func RateLimitMiddleware(primary, fallback Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		allowed, err := primary.Allow(c.Request.Context(), ip)
		if err != nil {
			requestLogger(c).Warn("Rate limiter unavailable, using fallback", zap.Error(err))
			if fallback == nil {
				c.Next()
				return
			}
			allowed, _ = fallback.Allow(c.Request.Context(), ip)
		}
		if !allowed {
			requestLogger(c).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
