package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/validation"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit far from int overflow.
	maxPage = 1_000_000
)

// PrincipalService implements listing, lookup, profile update, password reset
// and deletion for every principal kind.
type PrincipalService struct {
	repo      ports.PrincipalRepository
	hasher    ports.PasswordHasher
	validator *validation.Validator
	log       zerolog.Logger
}

func NewPrincipalService(
	repo ports.PrincipalRepository,
	hasher ports.PasswordHasher,
	validator *validation.Validator,
	log zerolog.Logger,
) *PrincipalService {
	return &PrincipalService{repo: repo, hasher: hasher, validator: validator, log: log}
}

func (s *PrincipalService) List(ctx context.Context, kind domain.Kind, in ports.ListInput) (*ports.ListResult, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("unknown principal kind %q", kind)
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		return nil, domain.NewValidationError("page must be at most %d", maxPage)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, kind, ports.PrincipalFilter{
		CNIC:       strings.TrimSpace(in.CNIC),
		BusinessID: strings.TrimSpace(in.BusinessID),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile:     strings.TrimSpace(in.Mobile),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	scrubbed := make([]*domain.Principal, 0, len(items))
	for _, p := range items {
		scrubbed = append(scrubbed, p.Scrubbed())
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListResult{
		Items:      scrubbed,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *PrincipalService) GetByCNIC(ctx context.Context, kind domain.Kind, cnic string) (*domain.Principal, error) {
	cnic = strings.TrimSpace(cnic)
	if cnic == "" {
		return nil, domain.NewValidationError("correct CNIC number required")
	}
	p, err := s.repo.FindByCNIC(ctx, kind, cnic)
	if err != nil {
		return nil, err
	}
	return p.Scrubbed(), nil
}

// Update applies the non-nil fields of in to the principal and revalidates
// the resulting profile. Natural-key changes go back through the store's
// uniqueness enforcement.
func (s *PrincipalService) Update(ctx context.Context, kind domain.Kind, id string, in ports.UpdateInput) (*domain.Principal, error) {
	p, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(p, in)

	fields := validation.Fields{
		FullName:   p.FullName,
		FatherName: p.FatherName,
		Email:      p.Email,
		Mobile:     p.Mobile,
		CNIC:       p.CNIC,
		Gender:     p.Gender,
		Address:    p.Address,
		City:       p.City,
		Branch:     p.Branch,
		Department: p.Department,
		Role:       string(p.Role),
		ImageURL:   p.ImageURL,
	}.Trim()
	if !p.DOB.IsZero() {
		dob := p.DOB
		fields.DOB = &dob
	}
	if err := s.validator.Profile(kind, fields); err != nil {
		return nil, err
	}
	if !kind.AllowsRole(domain.Role(fields.Role)) {
		return nil, domain.NewValidationError("role must be one of the %s roles", kind)
	}

	p.FullName, p.FatherName = fields.FullName, fields.FatherName
	p.Email, p.Mobile, p.CNIC = fields.Email, fields.Mobile, fields.CNIC
	p.Gender, p.Address, p.City = fields.Gender, fields.Address, fields.City
	p.Branch, p.Department, p.ImageURL = fields.Branch, fields.Department, fields.ImageURL
	p.Role = domain.Role(fields.Role)
	p.UpdatedAt = time.Now().UTC()

	key, err := s.repo.FindConflict(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update %s: uniqueness check: %w", kind, err)
	}
	if key != "" {
		return nil, &domain.ConflictError{Kind: kind, Key: key}
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("kind", string(kind)).Str("id", id).Msg("principal updated")
	return updated.Scrubbed(), nil
}

// ChangePassword replaces the password of the principal identified by cnic.
func (s *PrincipalService) ChangePassword(ctx context.Context, kind domain.Kind, cnic, password string) (*domain.Principal, error) {
	policy, ok := kind.Policy()
	if !ok || !policy.CanLogin {
		return nil, domain.NewValidationError("%s records do not hold passwords", kind)
	}

	cnic = strings.TrimSpace(cnic)
	if cnic == "" {
		return nil, domain.NewValidationError("correct CNIC number required")
	}
	if err := s.validator.Password(password); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByCNIC(ctx, kind, cnic)
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("change password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, kind, p.ID, digest); err != nil {
		return nil, err
	}

	s.log.Info().Str("kind", string(kind)).Str("id", p.ID).Msg("password changed")
	return p.Scrubbed(), nil
}

// Delete removes the principal. A missing principal yields ErrNotFound.
func (s *PrincipalService) Delete(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error) {
	p, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("kind", string(kind)).Str("id", id).Msg("principal deleted")
	return p.Scrubbed(), nil
}

func applyUpdate(p *domain.Principal, in ports.UpdateInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FullName, in.FullName)
	set(&p.FatherName, in.FatherName)
	set(&p.Email, in.Email)
	set(&p.Mobile, in.Mobile)
	set(&p.CNIC, in.CNIC)
	set(&p.Gender, in.Gender)
	set(&p.Address, in.Address)
	set(&p.City, in.City)
	set(&p.Branch, in.Branch)
	set(&p.Department, in.Department)
	set(&p.ImageURL, in.ImageURL)
	if in.Role != nil {
		p.Role = domain.Role(*in.Role)
	}
	if in.DOB != nil {
		p.DOB = in.DOB.UTC()
	}
}
