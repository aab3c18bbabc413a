package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/pkg/metrics"
)

// AuthService implements login and the role gate.
type AuthService struct {
	repo      ports.PrincipalRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	validator *validation.Validator
	log       zerolog.Logger

	dummyMu     sync.Mutex
	dummyDigest string
}

func NewAuthService(
	repo ports.PrincipalRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	validator *validation.Validator,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		log:       log,
	}
}

// Login checks email and password against the stored digest of kind and
// issues a token. Unknown email, missing digest and wrong password all
// return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, kind domain.Kind, email, password string) (string, *domain.Principal, error) {
	token, p, err := s.login(ctx, kind, email, password)
	metrics.LoginsTotal.WithLabelValues(string(kind), loginOutcome(err)).Inc()
	return token, p, err
}

func (s *AuthService) login(ctx context.Context, kind domain.Kind, email, password string) (string, *domain.Principal, error) {
	policy, ok := kind.Policy()
	if !ok || !policy.CanLogin {
		return "", nil, domain.ErrInvalidCredentials
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validator.Login(email, password); err != nil {
		return "", nil, err
	}

	p, err := s.repo.FindByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn one comparison so unknown emails take as long as wrong passwords.
			s.hasher.Verify(ctx, password, s.dummy(ctx))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login %s: %w", kind, err)
	}

	if p.PasswordHash == "" {
		s.hasher.Verify(ctx, password, s.dummy(ctx))
		return "", nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(ctx, password, p.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(p))
	if err != nil {
		return "", nil, fmt.Errorf("login %s: %w", kind, err)
	}

	s.log.Info().Str("kind", string(kind)).Str("id", p.ID).Msg("principal logged in")
	return token, p.Scrubbed(), nil
}

// WarmUp computes the digest compared against when no real one exists, so the
// first failed login does not pay for it.
func (s *AuthService) WarmUp(ctx context.Context) error {
	if s.dummy(ctx) == "" {
		return errors.New("auth: dummy digest unavailable")
	}
	return nil
}

// dummy returns a digest of a random secret. It is computed detached from the
// caller's cancellation and only cached once hashing succeeds.
func (s *AuthService) dummy(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyDigest != "" {
		return s.dummyDigest
	}
	digest, err := s.hasher.Hash(context.WithoutCancel(ctx), uuid.NewString())
	if err != nil {
		s.log.Warn().Err(err).Msg("dummy digest unavailable")
		return ""
	}
	s.dummyDigest = digest
	return digest
}

// Authorize verifies token, re-reads the principal from the store and checks
// its current role against roles. The returned claims carry the current role.
func (s *AuthService) Authorize(ctx context.Context, kind domain.Kind, token string, roles ...domain.Role) (*domain.Claims, error) {
	claims, err := s.authorize(ctx, kind, token, roles)
	metrics.GateDecisionsTotal.WithLabelValues(string(kind), gateOutcome(err)).Inc()
	return claims, err
}

func (s *AuthService) authorize(ctx context.Context, kind domain.Kind, token string, roles []domain.Role) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	// Tokens of another kind never name a principal of this one.
	if claims.Kind != kind {
		return nil, domain.ErrPrincipalGone
	}

	p, err := s.repo.FindByID(ctx, kind, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPrincipalGone
		}
		return nil, fmt.Errorf("authorize %s: %w", kind, err)
	}

	if !slices.Contains(roles, p.Role) {
		return nil, domain.ErrRoleDenied
	}

	claims.Role = p.Role
	return claims, nil
}

func loginOutcome(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}

func gateOutcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing_token"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid_token"
	case errors.Is(err, domain.ErrPrincipalGone):
		return "principal_gone"
	case errors.Is(err, domain.ErrRoleDenied):
		return "role_denied"
	default:
		return "error"
	}
}
