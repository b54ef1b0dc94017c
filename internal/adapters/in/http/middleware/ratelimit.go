package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bnema/dockcmd/internal/adapters/dto"
	"github.com/bnema/dockcmd/internal/boundaries/out"
)

// RateLimit checks the global budget first, then the caller's per-IP budget.
// A nil limiter skips its check.
func RateLimit(global, perIP out.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if global == nil && perIP == nil {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if global != nil && !global.Allow(ctx, "global") {
				return tooManyRequests(c)
			}
			if perIP != nil && !perIP.Allow(ctx, "ip:"+c.RealIP()) {
				return tooManyRequests(c)
			}
			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusTooManyRequests, dto.NewError(dto.KindRateLimited, "Too Many Requests"))
}
