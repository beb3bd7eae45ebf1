package middleware

import (
	"strconv"
	"time"

	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"

	"github.com/labstack/echo/v4"
)

// RateLimit counts requests per client IP. A failing store lets the request through.
func (m *Middleware) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.limiter == nil {
				return next(c)
			}

			allowed, remaining, reset, err := m.limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				logger.Warn("Middleware:RateLimit:StoreError", "error", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				retry := int(time.Until(reset).Seconds())
				if retry < 1 {
					retry = 1
				}
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(retry))
				return m.TooManyRequests(errors.ErrTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
