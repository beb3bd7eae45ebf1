package utils

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"hr-dashboard-api/core/config"
	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is what the auth middleware stores under constants.ContextTokenData.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) IsAdmin() bool {
	return c.Role == constants.RoleAdmin
}

// CanManageSlots reports whether the holder may create or reschedule one-on-one slots.
func (c *TokenClaims) CanManageSlots() bool {
	return c.Role == constants.RoleAdmin || c.Role == constants.RoleManager
}

func jwtSettings() (secret []byte, issuer string, err error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, "", errors.NewAppError(errors.ErrInternalServer, "jwt secret is not configured", nil)
	}
	return []byte(cfg.JWT.Secret), cfg.JWT.Issuer, nil
}

func SignToken(userID uuid.UUID, email, role, issuer string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, _, err := jwtSettings()
	if err != nil {
		return nil, err
	}
	return ParseToken(tokenString, secret)
}

func ParseToken(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token has expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", nil)
	}
	return claims, nil
}

// GetTokenFromHeader strips the Bearer prefix from an Authorization header value.
func GetTokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "authorization header must be a bearer token", nil)
	}
	return strings.TrimSpace(header[len(prefix):]), nil
}
