package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/pkg/metrics"
)

// RegistrationService runs the registration pipeline:
// validate → uniqueness pre-check → hash → allocate business id → insert.
type RegistrationService struct {
	repo      ports.PrincipalRepository
	allocator *BusinessIDAllocator
	hasher    ports.PasswordHasher
	validator *validation.Validator
	log       zerolog.Logger
}

func NewRegistrationService(
	repo ports.PrincipalRepository,
	allocator *BusinessIDAllocator,
	hasher ports.PasswordHasher,
	validator *validation.Validator,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		allocator: allocator,
		hasher:    hasher,
		validator: validator,
		log:       log,
	}
}

// Register validates and persists a new principal and returns the stored
// record without its password hash.
func (s *RegistrationService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, error) {
	created, err := s.register(ctx, in)
	metrics.RegistrationsTotal.WithLabelValues(string(in.Kind), registrationOutcome(err)).Inc()
	return created, err
}

func (s *RegistrationService) register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, error) {
	policy, ok := in.Kind.Policy()
	if !ok {
		return nil, domain.NewValidationError("unknown principal kind %q", in.Kind)
	}

	fields := registerFields(in).Trim()
	if err := s.validator.Registration(in.Kind, fields); err != nil {
		return nil, err
	}

	role := domain.Role(fields.Role)
	if role == "" || !in.Kind.AllowsRole(role) {
		role = policy.DefaultRole
	}

	now := time.Now().UTC()
	p := &domain.Principal{
		Kind:       in.Kind,
		FullName:   fields.FullName,
		FatherName: fields.FatherName,
		Email:      fields.Email,
		Mobile:     fields.Mobile,
		CNIC:       fields.CNIC,
		Gender:     fields.Gender,
		Address:    fields.Address,
		City:       fields.City,
		Branch:     fields.Branch,
		Department: fields.Department,
		Role:       role,
		ImageURL:   fields.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.DOB != nil {
		p.DOB = in.DOB.UTC()
	}

	// Friendly early rejection. The store's unique indexes remain the
	// authoritative check at insert time.
	key, err := s.repo.FindConflict(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("register %s: uniqueness check: %w", in.Kind, err)
	}
	if key != "" {
		return nil, &domain.ConflictError{Kind: in.Kind, Key: key}
	}

	return s.persist(ctx, p, in.Password)
}

// persist hashes the password, allocates the business id and inserts p.
// Hashing runs first so a failed hash never consumes a sequence number.
func (s *RegistrationService) persist(ctx context.Context, p *domain.Principal, password string) (*domain.Principal, error) {
	policy, _ := p.Kind.Policy()
	if policy.CanLogin && password != "" {
		digest, err := s.hasher.Hash(ctx, password)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", p.Kind, err)
		}
		p.PasswordHash = digest
	}

	businessID, err := s.allocator.Next(ctx, p.Kind)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", p.Kind, err)
	}
	p.BusinessID = businessID

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("register %s: %w", p.Kind, err)
	}

	s.log.Info().
		Str("kind", string(created.Kind)).
		Str("id", created.ID).
		Str("business_id", created.BusinessID).
		Str("role", string(created.Role)).
		Msg("principal registered")

	return created.Scrubbed(), nil
}

// EnsureAdmin registers an employee admin with the given credentials unless an
// employee with that email already exists. It lets an empty deployment reach
// the admin-only registration route.
func (s *RegistrationService) EnsureAdmin(ctx context.Context, email, password string) (*domain.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validator.Login(email, password); err != nil {
		return nil, err
	}
	if err := s.validator.Password(password); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, domain.KindEmployee, email)
	if err == nil {
		return existing.Scrubbed(), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	now := time.Now().UTC()
	return s.persist(ctx, &domain.Principal{
		Kind:      domain.KindEmployee,
		FullName:  "Administrator",
		Email:     email,
		Role:      domain.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}, password)
}

func registerFields(in ports.RegisterInput) validation.Fields {
	return validation.Fields{
		FullName:   in.FullName,
		FatherName: in.FatherName,
		Email:      in.Email,
		Mobile:     in.Mobile,
		CNIC:       in.CNIC,
		DOB:        in.DOB,
		Gender:     in.Gender,
		Address:    in.Address,
		City:       in.City,
		Branch:     in.Branch,
		Department: in.Department,
		Role:       in.Role,
		Password:   in.Password,
		ImageURL:   in.ImageURL,
	}
}

func registrationOutcome(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return "created"
	case errors.As(err, &ve):
		return "invalid"
	case domain.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}
