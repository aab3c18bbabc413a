package ports

import (
	"context"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// PrincipalFilter narrows a List call. Empty fields are ignored.
type PrincipalFilter struct {
	CNIC       string
	BusinessID string
	Email      string
	Mobile     string
	Page       int // 1-based
	Limit      int
}

// PrincipalRepository is the Credential Store. Implementations must enforce
// natural-key uniqueness atomically on Create and Update and report
// violations as *domain.ConflictError.
type PrincipalRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByID(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error)
	FindByEmail(ctx context.Context, kind domain.Kind, email string) (*domain.Principal, error)
	FindByCNIC(ctx context.Context, kind domain.Kind, cnic string) (*domain.Principal, error)
	// FindConflict returns the first natural key of p already held by another
	// principal of the same kind, or "" when none is taken.
	FindConflict(ctx context.Context, p *domain.Principal) (domain.NaturalKey, error)
	List(ctx context.Context, kind domain.Kind, filter PrincipalFilter) ([]*domain.Principal, int64, error)
	Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	UpdatePasswordHash(ctx context.Context, kind domain.Kind, id, hash string) error
	// Delete returns domain.ErrNotFound when no principal matched.
	Delete(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error)
	// MaxBusinessID returns the greatest stored business id of kind, or "".
	MaxBusinessID(ctx context.Context, kind domain.Kind) (string, error)
}
