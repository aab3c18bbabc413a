package handler

import (
	"github.com/orgledger/personnel-api/internal/core/validation"
)

// echoValidator lets Echo call c.Validate(req) with the same rules and
// messages as the service-level schemas.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validation.Validator) *echoValidator {
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are
// *domain.ValidationError and render as 400.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
