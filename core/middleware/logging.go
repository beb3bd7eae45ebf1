package middleware

import (
	"time"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/core/utils"

	"github.com/labstack/echo/v4"
)

// RequestLogger tags each request with an id and logs its outcome.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(constants.HeaderRequestID)
			if requestID == "" {
				requestID = utils.GenerateID()
			}
			c.Set(constants.ContextRequestID, requestID)
			c.Response().Header().Set(constants.HeaderRequestID, requestID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("HTTP:Request",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
			)
			return nil
		}
	}
}
