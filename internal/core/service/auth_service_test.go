package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/infrastructure/security"
)

func TestAuthService_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.register.Register(ctx, employeeInput("1234567890123", "ayesha@example.com", "staff", "password1"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created.BusinessID != "EMP-000001" || created.PasswordHash != "" {
		t.Fatalf("unexpected registration result: %+v", created)
	}

	if _, err := f.register.Register(ctx, employeeInput("1234567890123", "other@example.com", "staff", "password1")); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	token, p, err := f.auth.Login(ctx, domain.KindEmployee, "ayesha@example.com", "password1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if p.PasswordHash != "" {
		t.Fatalf("login must return the scrubbed record")
	}

	if _, err := f.auth.Authorize(ctx, domain.KindEmployee, token, domain.RoleAdmin); !errors.Is(err, domain.ErrRoleDenied) {
		t.Fatalf("expected ErrRoleDenied, got %v", err)
	}

	claims, err := f.auth.Authorize(ctx, domain.KindEmployee, token, domain.RoleAdmin, domain.RoleStaff)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if claims.PrincipalID != created.ID || claims.BusinessID != "EMP-000001" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UnifiedFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.register.Register(ctx, employeeInput("1234567890123", "ayesha@example.com", "staff", "password1")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Registered without a password: can never log in.
	if _, err := f.register.Register(ctx, employeeInput("2222222222222", "nopass@example.com", "staff", "")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name, email, password string
	}{
		{"unknown email", "nobody@example.com", "password1"},
		{"wrong password", "ayesha@example.com", "password2"},
		{"no stored digest", "nopass@example.com", "password1"},
	}
	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.auth.Login(ctx, domain.KindEmployee, tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			messages = append(messages, err.Error())
		})
	}
	for _, m := range messages[1:] {
		if m != messages[0] {
			t.Fatalf("login failures must be indistinguishable: %q vs %q", m, messages[0])
		}
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.auth.Login(context.Background(), domain.KindUser, "not-an-email", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthService_Login_SeekersCannotLogIn(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.auth.Login(context.Background(), domain.KindSeeker, "a@example.com", "password1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authorize_Outcomes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.register.Register(ctx, userInput("admin@example.com", "03001234567", "", "admin"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := f.auth.Login(ctx, domain.KindUser, "admin@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	t.Run("missing token skips the store", func(t *testing.T) {
		before := f.repo.findByID.Load()
		if _, err := f.auth.Authorize(ctx, domain.KindUser, "", domain.RoleAdmin); !errors.Is(err, domain.ErrTokenMissing) {
			t.Fatalf("expected ErrTokenMissing, got %v", err)
		}
		if f.repo.findByID.Load() != before {
			t.Fatalf("store must not be read without a token")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		before := f.repo.findByID.Load()
		if _, err := f.auth.Authorize(ctx, domain.KindUser, "garbage", domain.RoleAdmin); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
		if f.repo.findByID.Load() != before {
			t.Fatalf("store must not be read for an undecodable token")
		}
	})

	t.Run("token of another kind", func(t *testing.T) {
		if _, err := f.auth.Authorize(ctx, domain.KindEmployee, token, domain.RoleAdmin); !errors.Is(err, domain.ErrPrincipalGone) {
			t.Fatalf("expected ErrPrincipalGone, got %v", err)
		}
	})

	t.Run("role read fresh from the store", func(t *testing.T) {
		demoted := "user"
		if _, err := f.people.Update(ctx, domain.KindUser, admin.ID, updateRole(demoted)); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if _, err := f.auth.Authorize(ctx, domain.KindUser, token, domain.RoleAdmin); !errors.Is(err, domain.ErrRoleDenied) {
			t.Fatalf("expected ErrRoleDenied after demotion, got %v", err)
		}
	})

	t.Run("principal deleted", func(t *testing.T) {
		if _, err := f.people.Delete(ctx, domain.KindUser, admin.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := f.auth.Authorize(ctx, domain.KindUser, token, domain.RoleUser); !errors.Is(err, domain.ErrPrincipalGone) {
			t.Fatalf("expected ErrPrincipalGone, got %v", err)
		}
	})
}

// recordingHasher remembers every digest it is asked to compare against.
type recordingHasher struct {
	*security.BcryptHasher
	mu      sync.Mutex
	digests []string
}

func (h *recordingHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	h.mu.Lock()
	h.digests = append(h.digests, digest)
	h.mu.Unlock()
	return h.BcryptHasher.Verify(ctx, plaintext, digest)
}

func TestAuthService_Login_FailuresAlwaysCompareARealDigest(t *testing.T) {
	f := newFixture(t)
	hasher := &recordingHasher{BcryptHasher: security.NewBcryptHasher(bcrypt.MinCost)}
	auth := NewAuthService(f.repo, hasher, f.tokens, validation.New(), zerolog.Nop())

	if _, err := f.register.Register(context.Background(), employeeInput("2222222222222", "nopass@example.com", "staff", "")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// The first unknown-email attempt comes from a caller that already went away.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := auth.Login(cancelled, domain.KindEmployee, "ghost@example.com", "password1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if auth.dummyDigest == "" {
		t.Fatalf("dummy digest must survive a cancelled first caller")
	}

	ctx := context.Background()
	for _, email := range []string{"ghost@example.com", "nopass@example.com"} {
		if _, _, err := auth.Login(ctx, domain.KindEmployee, email, "password1"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", email, err)
		}
	}

	hasher.mu.Lock()
	defer hasher.mu.Unlock()
	if len(hasher.digests) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(hasher.digests))
	}
	for i, d := range hasher.digests {
		if d != auth.dummyDigest {
			t.Fatalf("comparison %d ran against %q, want the dummy digest", i, d)
		}
	}
}

func TestAuthService_WarmUp(t *testing.T) {
	f := newFixture(t)

	if err := f.auth.WarmUp(context.Background()); err != nil {
		t.Fatalf("WarmUp: %v", err)
	}
	if f.auth.dummyDigest == "" {
		t.Fatalf("expected a cached dummy digest")
	}

	broken := NewAuthService(f.repo, failingHasher{}, f.tokens, validation.New(), zerolog.Nop())
	if err := broken.WarmUp(context.Background()); err == nil {
		t.Fatalf("expected WarmUp to fail when hashing is unavailable")
	}
}
