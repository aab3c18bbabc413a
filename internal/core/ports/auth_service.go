package ports

import (
	"context"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, kind domain.Kind, email, password string) (string, *domain.Principal, error)
	// Authorize runs the Role Gate: verify the token, re-read the principal
	// and check its current role against roles.
	Authorize(ctx context.Context, kind domain.Kind, token string, roles ...domain.Role) (*domain.Claims, error)
}
