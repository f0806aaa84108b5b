package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"boxfactory/internal/core/apperror"
)

// RateLimitConfig sets the per-client request budget.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int64

	// Redis shares counters between instances; nil keeps them in process
	Redis *redis.Client
}

// RateLimit limits requests per client IP over a fixed window.
// Rejections are reported as RATE_LIMITED through ErrorHandler.
func RateLimit(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	store, err := newLimiterStore(cfg.Redis)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(store, limiter.Rate{
		Period: cfg.Window,
		Limit:  cfg.MaxRequests,
	})

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			reset, _ := strconv.ParseInt(c.Writer.Header().Get("X-RateLimit-Reset"), 10, 64)
			_ = c.Error(apperror.NewRateLimited(cfg.MaxRequests, reset))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			_ = c.Error(apperror.NewInternal(fmt.Errorf("rate limiter: %w", err)))
		}),
	), nil
}

func newLimiterStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStore(), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "boxfactory_rl",
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("redis limiter store: %w", err)
	}
	return store, nil
}
