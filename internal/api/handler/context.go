package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgledger/personnel-api/internal/api/middleware"
	"github.com/orgledger/personnel-api/internal/core/domain"
)

// ctxClaims returns the claims injected by the role gate. Their absence means
// the route was registered without a gate.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "missing authentication claims")
	}
	return claims, nil
}
