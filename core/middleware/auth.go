package middleware

import (
	"slices"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/core/utils"

	"github.com/labstack/echo/v4"
)

func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return m.ErrorResponse(c, err)
			}

			claims, err := m.parseToken(token)
			if err != nil {
				logger.Warn("Middleware:Auth:InvalidToken", "error", err, "path", c.Path())
				return m.ErrorResponse(c, err)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireRoles must run after AuthMiddleware.
func (m *Middleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := GetClaims(c)
			if err != nil {
				return m.ErrorResponse(c, err)
			}
			if !slices.Contains(roles, claims.Role) {
				return m.Forbidden(errors.ErrForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// GetClaims returns the token claims stored by AuthMiddleware.
func GetClaims(c echo.Context) (*utils.TokenClaims, error) {
	tokenData := c.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}
	return claims, nil
}
