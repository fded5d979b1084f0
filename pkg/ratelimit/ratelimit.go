// Package ratelimit throttles abuse-prone endpoints per client IP.
package ratelimit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// New builds a limiter for rateFormatted ("20-M" = 20/min, "1000-H", "5-S").
// An empty rate disables limiting and returns nil. With a Redis client the
// counters are shared between instances, otherwise they live in memory.
func New(rateFormatted string, client *redis.Client) (*limiter.Limiter, error) {
	if rateFormatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "crystal:ratelimit"})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStore()
	}
	return limiter.New(store, rate), nil
}

// Middleware limits requests by client IP. A nil limiter lets everything through.
// Store failures fail open.
func Middleware(instance *limiter.Limiter, log zerolog.Logger) fiber.Handler {
	if instance == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP() + ":" + c.Route().Path
		ctx, err := instance.Increment(c.Context(), key, 1)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests, please try again later.",
			})
		}
		return c.Next()
	}
}
