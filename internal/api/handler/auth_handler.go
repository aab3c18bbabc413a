package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

// AuthHandler serves the login route of one principal kind.
type AuthHandler struct {
	kind        domain.Kind
	authService ports.AuthService
}

func NewAuthHandler(kind domain.Kind, authService ports.AuthService) *AuthHandler {
	return &AuthHandler{kind: kind, authService: authService}
}

// Login authenticates a principal and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope{data=loginResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /employee/emp-login [post]
// @Router       /user/user-login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, p, err := h.authService.Login(c.Request().Context(), h.kind, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Data:    loginResponse{Token: token, Principal: p},
		Message: "login successful",
	})
}
