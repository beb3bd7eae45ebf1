package middleware

import (
	"hr-dashboard-api/core/controller"
	"hr-dashboard-api/core/ratelimit"
	"hr-dashboard-api/core/utils"
)

type Middleware struct {
	controller.BaseController
	parseToken     func(string) (*utils.TokenClaims, error)
	limiter        ratelimit.Store
	allowedOrigins map[string]struct{}
}

func NewMiddleware(limiter ratelimit.Store, allowedOrigins []string) *Middleware {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[normalizeOrigin(o)] = struct{}{}
	}
	return &Middleware{
		BaseController: controller.NewBaseController(),
		parseToken:     utils.ValidateAndParseToken,
		limiter:        limiter,
		allowedOrigins: origins,
	}
}

// WithTokenParser swaps the bearer token parser, mainly for tests.
func (m *Middleware) WithTokenParser(parse func(string) (*utils.TokenClaims, error)) *Middleware {
	m.parseToken = parse
	return m
}
