package ports

import (
	"context"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// OrgUnitInput carries the fields of a city, branch or department. On update,
// nil fields are left untouched.
type OrgUnitInput struct {
	Title    *string
	Country  *string
	Address  *string
	CityID   *string
	BranchID *string
	Contact  *string
	Email    *string
}

// OrgUnitRepository stores organizational entities per kind.
type OrgUnitRepository interface {
	Create(ctx context.Context, u *domain.OrgUnit) (*domain.OrgUnit, error)
	FindByID(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error)
	// List returns every entity of kind, oldest first.
	List(ctx context.Context, kind domain.OrgKind) ([]*domain.OrgUnit, error)
	// Update stores the fields of u and appends entry to its history in one
	// write. It returns domain.ErrNotFound when u.ID is absent.
	Update(ctx context.Context, u *domain.OrgUnit, entry domain.OrgUpdate) (*domain.OrgUnit, error)
	Delete(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error)
	Count(ctx context.Context, kind domain.OrgKind) (int64, error)
}

// OrgUnitService manages cities, branches and departments. actor identifies
// the principal making a write and is recorded on the entity.
type OrgUnitService interface {
	Create(ctx context.Context, kind domain.OrgKind, in OrgUnitInput, actor string) (*domain.OrgUnit, error)
	Get(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error)
	List(ctx context.Context, kind domain.OrgKind) ([]*domain.OrgUnit, error)
	Update(ctx context.Context, kind domain.OrgKind, id string, in OrgUnitInput, actor string) (*domain.OrgUnit, error)
	Delete(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error)
	Count(ctx context.Context, kind domain.OrgKind) (int64, error)
}
