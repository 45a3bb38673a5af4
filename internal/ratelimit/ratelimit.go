package ratelimit

import (
	"fmt"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "ratelimit"

// builds a per-IP limiter middleware. rate uses the limiter format,
// e.g. "10-M" for ten requests per minute. a nil client selects an
// in-memory store (tests, single instance).
func New(client *redis.Client, name, rate string) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	prefix := storePrefix + ":" + name

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   prefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix})
	}

	return mgin.NewMiddleware(
		limiter.New(store, parsed),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("rate limit reached", "limiter", name, "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			errors.TooManyRequests(c, "too many requests, please try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// fail open
			logger.ErrorErr(err, "rate limiter failed", "limiter", name)
			c.Next()
		}),
	), nil
}
