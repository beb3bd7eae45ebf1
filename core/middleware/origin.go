package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"

	"github.com/labstack/echo/v4"
)

// OriginGuard rejects cross-site state-changing requests. Browsers always send Origin
// (or at least Referer) on such requests; clients that send neither are let through.
func (m *Middleware) OriginGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			origin := req.Header.Get(echo.HeaderOrigin)
			if origin == "" {
				if ref := req.Referer(); ref != "" {
					if u, err := url.Parse(ref); err == nil && u.Host != "" {
						origin = u.Scheme + "://" + u.Host
					}
				}
			}
			if origin == "" || m.originAllowed(origin, req.Host) {
				return next(c)
			}

			logger.Warn("Middleware:OriginGuard:Rejected", "origin", origin, "path", req.URL.Path)
			return m.Forbidden(errors.ErrForbidden, "cross-origin request rejected")
		}
	}
}

func (m *Middleware) originAllowed(origin, host string) bool {
	origin = normalizeOrigin(origin)
	if _, ok := m.allowedOrigins[origin]; ok {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

func normalizeOrigin(o string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
}
