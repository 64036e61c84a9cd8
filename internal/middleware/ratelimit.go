package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/arturoeanton/health-planner/internal/observability"
)

// CheckRateLimit increments the fixed-window counter of id on resource and
// reports whether the request is still within limit. A rejected request
// returns the time left in the window.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, time.Duration, error) {
	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
	}
	if cnt <= int64(limit) {
		return true, 0, nil
	}

	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		// The counter lost its expiry (EXPIRE failed after INCR); restart
		// the window so the caller is not locked out for good.
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
		ttl = window
	}
	return false, ttl, nil
}

// RateLimit returns a Fiber middleware enforcing limit requests per window
// for each authenticated user, falling back to the remote IP. A nil client
// or a non-positive limit disables it. Redis failures let the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name string) fiber.Handler {
	if rdb == nil || limit <= 0 {
		return func(c fiber.Ctx) error { return c.Next() }
	}

	return func(c fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uc := GetUserContext(c); uc != nil {
			id = "user:" + uc.UserID
		}

		allowed, ttl, err := CheckRateLimit(c.Context(), rdb, name, id, limit, window)
		if err != nil {
			slog.Warn("rate limit check failed, allowing request", "route", name, "error", err)
			return c.Next()
		}

		if !allowed {
			observability.RateLimited.WithLabelValues(name).Inc()
			if ttl > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(ttl.Round(time.Second).Seconds())))
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
