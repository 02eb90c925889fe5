package middleware

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"taskvoice/internal/request"
)

const defaultRatelimitRate = "60-M"

// RateLimit returns middleware that uses ulule/limiter with Redis, keyed
// by client IP. The rate is a limiter format string such as "60-M".
func RateLimit(redisClient *redis.Client, rate string) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = defaultRatelimitRate
	}
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	store, err := redisstore.NewStore(redisClient)
	if err != nil {
		return nil, err
	}
	return rateLimitHandler(store, parsed), nil
}

// RateLimitInMemory is the Redis-free variant for deployments running the
// memory session backend.
func RateLimitInMemory(rate string) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = defaultRatelimitRate
	}
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return rateLimitHandler(memorystore.NewStore(), parsed), nil
}

func rateLimitHandler(store limiter.Store, rate limiter.Rate) func(http.Handler) http.Handler {
	instance := limiter.New(store, rate)
	keyGetter := func(r *http.Request) string {
		return request.ClientIP(r)
	}
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(keyGetter))
	return mw.Handler
}
