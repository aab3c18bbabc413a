package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

var signingMethod = jwt.SigningMethodHS256

// DefaultTokenTTL bounds token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// tokenClaims is the wire form of domain.Claims.
type tokenClaims struct {
	PrincipalID string      `json:"pid"`
	Kind        domain.Kind `json:"kind"`
	Role        domain.Role `json:"role"`
	Name        string      `json:"name,omitempty"`
	Email       string      `json:"email,omitempty"`
	BusinessID  string      `json:"business_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer with HS256 and a process-wide secret.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret, issuer string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue signs claims with an expiry of now+ttl.
func (j *JWTIssuer) Issue(c domain.Claims) (string, error) {
	if c.PrincipalID == "" {
		return "", errors.New("issue token: principal id is required")
	}
	now := j.now()
	claims := tokenClaims{
		PrincipalID: c.PrincipalID,
		Kind:        c.Kind,
		Role:        c.Role,
		Name:        c.Name,
		Email:       c.Email,
		BusinessID:  c.BusinessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   c.PrincipalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry.
func (j *JWTIssuer) Verify(token string) (*domain.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != signingMethod.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if claims.PrincipalID == "" {
		return nil, fmt.Errorf("%w: missing principal id", domain.ErrTokenInvalid)
	}

	return &domain.Claims{
		PrincipalID: claims.PrincipalID,
		Kind:        claims.Kind,
		Role:        claims.Role,
		Name:        claims.Name,
		Email:       claims.Email,
		BusinessID:  claims.BusinessID,
	}, nil
}
