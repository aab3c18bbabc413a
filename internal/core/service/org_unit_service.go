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

// OrgUnitService manages the cities, branches and departments that
// principal records point at.
type OrgUnitService struct {
	repo      ports.OrgUnitRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func NewOrgUnitService(repo ports.OrgUnitRepository, validator *validation.Validator, log zerolog.Logger) *OrgUnitService {
	return &OrgUnitService{repo: repo, validator: validator, log: log}
}

func (s *OrgUnitService) Create(ctx context.Context, kind domain.OrgKind, in ports.OrgUnitInput, actor string) (*domain.OrgUnit, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("unknown organization kind %q", kind)
	}

	now := time.Now().UTC()
	u := applyOrgInput(&domain.OrgUnit{
		Kind:      kind,
		CreatedBy: actor,
		Updates:   []domain.OrgUpdate{},
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err := s.validator.OrgUnit(u); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	s.log.Info().Str("kind", string(kind)).Str("id", created.ID).Str("actor", actor).Msg("organization unit created")
	return created, nil
}

func (s *OrgUnitService) Get(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("unknown organization kind %q", kind)
	}
	return s.repo.FindByID(ctx, kind, id)
}

func (s *OrgUnitService) List(ctx context.Context, kind domain.OrgKind) ([]*domain.OrgUnit, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("unknown organization kind %q", kind)
	}
	units, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return units, nil
}

// Update merges in over the stored entity, validates the result against the
// creation schema and records actor in the change history.
func (s *OrgUnitService) Update(ctx context.Context, kind domain.OrgKind, id string, in ports.OrgUnitInput, actor string) (*domain.OrgUnit, error) {
	current, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := applyOrgInput(current, in)
	u.UpdatedAt = now
	if err := s.validator.OrgUnit(u); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, u, domain.OrgUpdate{At: now, By: actor})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("kind", string(kind)).Str("id", id).Str("actor", actor).Msg("organization unit updated")
	return updated, nil
}

func (s *OrgUnitService) Delete(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("unknown organization kind %q", kind)
	}
	return s.repo.Delete(ctx, kind, id)
}

func (s *OrgUnitService) Count(ctx context.Context, kind domain.OrgKind) (int64, error) {
	if !kind.Valid() {
		return 0, domain.NewValidationError("unknown organization kind %q", kind)
	}
	return s.repo.Count(ctx, kind)
}

func applyOrgInput(u *domain.OrgUnit, in ports.OrgUnitInput) *domain.OrgUnit {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&u.Title, in.Title)
	set(&u.Country, in.Country)
	set(&u.Address, in.Address)
	set(&u.CityID, in.CityID)
	set(&u.BranchID, in.BranchID)
	set(&u.Contact, in.Contact)
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	return u
}
