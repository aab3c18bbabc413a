package ports

import (
	"context"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. Comparison runs in
	// constant time with respect to where the mismatch occurs.
	Verify(ctx context.Context, plaintext, digest string) bool
}

// TokenIssuer signs and verifies bearer tokens carrying principal claims.
type TokenIssuer interface {
	Issue(claims domain.Claims) (string, error)
	// Verify returns domain.ErrTokenInvalid for malformed, unsigned, tampered
	// or expired tokens.
	Verify(token string) (*domain.Claims, error)
}
