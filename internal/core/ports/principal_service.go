package ports

import (
	"context"
	"time"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// RegisterInput carries every field any principal kind can be registered
// with. Which fields are required depends on Kind.
type RegisterInput struct {
	Kind       domain.Kind
	FullName   string
	FatherName string
	Email      string
	Mobile     string
	CNIC       string
	DOB        *time.Time
	Gender     string
	Address    string
	City       string
	Branch     string
	Department string
	Role       string
	Password   string
	ImageURL   string
}

// UpdateInput carries a partial profile update. Nil fields are left untouched.
type UpdateInput struct {
	FullName   *string
	FatherName *string
	Email      *string
	Mobile     *string
	CNIC       *string
	DOB        *time.Time
	Gender     *string
	Address    *string
	City       *string
	Branch     *string
	Department *string
	Role       *string
	ImageURL   *string
}

// ListInput carries the parameters of a list request.
type ListInput struct {
	CNIC       string
	BusinessID string
	Email      string
	Mobile     string
	Page       int
	Limit      int
}

// ListResult is one page of principals.
type ListResult struct {
	Items      []*domain.Principal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RegistrationService admits new principals.
type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Principal, error)
}

// PrincipalService covers the read, update and delete lifecycle.
type PrincipalService interface {
	List(ctx context.Context, kind domain.Kind, in ListInput) (*ListResult, error)
	GetByCNIC(ctx context.Context, kind domain.Kind, cnic string) (*domain.Principal, error)
	Update(ctx context.Context, kind domain.Kind, id string, in UpdateInput) (*domain.Principal, error)
	ChangePassword(ctx context.Context, kind domain.Kind, cnic, password string) (*domain.Principal, error)
	Delete(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error)
}
