package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter decides whether a client identified by key may make another request
type Limiter interface {
	// Allow consumes one request for key.
	// Returns: allowed, remaining requests, reset time, error
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
	// Config reports the configured limit and window
	Config() RateLimitConfig
}

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// DefaultKeyPrefix namespaces the rate limit counters in Redis
const DefaultKeyPrefix = "rate_limit:recipes"

// RedisLimiter is a fixed window limiter shared by every API instance
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRedisLimiter creates a new Redis backed rate limiter
func NewRedisLimiter(redisClient *redis.Client, config RateLimitConfig) *RedisLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}
	return &RedisLimiter{
		redis:  redisClient,
		config: config,
	}
}

func (rl *RedisLimiter) Config() RateLimitConfig { return rl.config }

func (rl *RedisLimiter) key(client string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, client, windowStart.Unix())
}

func (rl *RedisLimiter) Allow(ctx context.Context, client string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	key := rl.key(client, windowStart)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// Remaining reports the requests left for client without consuming one
func (rl *RedisLimiter) Remaining(ctx context.Context, client string) (int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	resetTime := windowStart.Add(rl.config.Window)

	count, err := rl.redis.Get(ctx, rl.key(client, windowStart)).Int()
	if err == redis.Nil {
		return rl.config.Limit, resetTime, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetTime, nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is an in-process token bucket per client, used when no Redis
// is configured. Limit tokens refill evenly over Window.
type LocalLimiter struct {
	config   RateLimitConfig
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// maxVisitors bounds the visitor map before idle entries are pruned
const maxVisitors = 10000

// NewLocalLimiter creates a new in-memory rate limiter
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		config:   config,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *LocalLimiter) Config() RateLimitConfig { return l.config }

func (l *LocalLimiter) Allow(_ context.Context, client string) (bool, int, time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[client]
	if !ok {
		if len(l.visitors) >= maxVisitors {
			l.prune(now)
		}
		every := rate.Every(l.config.Window / time.Duration(l.config.Limit))
		v = &visitor{limiter: rate.NewLimiter(every, l.config.Limit)}
		l.visitors[client] = v
	}
	v.lastSeen = now

	allowed := v.limiter.AllowN(now, 1)
	tokens := v.limiter.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	// time until the bucket is full again
	missing := float64(l.config.Limit) - tokens
	reset := now
	if missing > 0 {
		reset = now.Add(time.Duration(missing / float64(v.limiter.Limit()) * float64(time.Second)))
	}
	return allowed, remaining, reset, nil
}

// prune drops visitors whose bucket has been idle for a whole window.
// Callers must hold l.mu.
func (l *LocalLimiter) prune(now time.Time) {
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.config.Window {
			delete(l.visitors, k)
		}
	}
}

// RateLimit returns a Gin middleware that enforces rate limiting per client IP.
// Limiter failures are logged and the request is let through.
func RateLimit(limiter Limiter, log *zap.Logger) gin.HandlerFunc {
	cfg := limiter.Config()
	return func(c *gin.Context) {
		allowed, remaining, resetTime, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err), zap.String("clientIp", c.ClientIP()))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rateLimitRejects.Inc()
			retryAfter := int(time.Until(resetTime).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			WriteError(c, http.StatusTooManyRequests,
				fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", cfg.Limit, cfg.Window))
			return
		}

		c.Next()
	}
}
