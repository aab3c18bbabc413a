package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

// Context keys written by RoleGate.
const (
	ClaimsKey       = "claims"
	claimsKeyPrefix = "claims."
)

// ClaimsKeyFor is the role-specific key claims are also stored under,
// e.g. "claims.admin".
func ClaimsKeyFor(role domain.Role) string {
	return claimsKeyPrefix + string(role)
}

// RoleGate admits a request only when its bearer token names a principal of
// kind whose current role is one of roles. Rejections are domain errors and
// are rendered by the central error handler.
func RoleGate(authorizer ports.AuthService, kind domain.Kind, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

			claims, err := authorizer.Authorize(c.Request().Context(), kind, token, roles...)
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			c.Set(ClaimsKeyFor(claims.Role), claims)
			return next(c)
		}
	}
}

// bearerToken strips an optional "Bearer " scheme. A bare token is accepted
// as-is.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, rest, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	return header
}
