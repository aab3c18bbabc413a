package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/infrastructure/db/memory"
	"github.com/orgledger/personnel-api/internal/infrastructure/security"
)

// spyRepo counts role-gate lookups on top of the in-memory store.
type spyRepo struct {
	*memory.PrincipalRepository
	findByID atomic.Int64
}

func (r *spyRepo) FindByID(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error) {
	r.findByID.Add(1)
	return r.PrincipalRepository.FindByID(ctx, kind, id)
}

type fixture struct {
	repo     *spyRepo
	seq      *memory.Sequence
	register *RegistrationService
	auth     *AuthService
	people   *PrincipalService
	tokens   *security.JWTIssuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := &spyRepo{PrincipalRepository: memory.NewPrincipalRepository()}
	seq := memory.NewSequence()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := security.NewJWTIssuer("test-secret", "personnel-api", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTIssuer: %v", err)
	}
	v := validation.New()
	log := zerolog.Nop()

	return &fixture{
		repo:     repo,
		seq:      seq,
		register: NewRegistrationService(repo, NewBusinessIDAllocator(seq, repo, log), hasher, v, log),
		auth:     NewAuthService(repo, hasher, tokens, v, log),
		people:   NewPrincipalService(repo, hasher, v, log),
		tokens:   tokens,
	}
}

func dob() *time.Time {
	d := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	return &d
}

func employeeInput(cnic, email, role, password string) ports.RegisterInput {
	return ports.RegisterInput{
		Kind:       domain.KindEmployee,
		FullName:   "Ayesha Khan",
		FatherName: "Imran Khan",
		Email:      email,
		Mobile:     "03001234567",
		CNIC:       cnic,
		DOB:        dob(),
		Gender:     "Female",
		Address:    "12 Mall Road",
		City:       "city-1",
		Branch:     "branch-1",
		Department: "dept-1",
		Role:       role,
		Password:   password,
	}
}

func userInput(email, mobile, cnic, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Kind:       domain.KindUser,
		FullName:   "Bilal Ahmed",
		FatherName: "Ahmed Ali",
		Email:      email,
		Mobile:     mobile,
		CNIC:       cnic,
		DOB:        dob(),
		Gender:     "male",
		Address:    "7 Canal View",
		City:       "city-1",
		Role:       role,
		Password:   "supersecret",
	}
}

func seekerInput(cnic string) ports.RegisterInput {
	return ports.RegisterInput{
		Kind:       domain.KindSeeker,
		FullName:   "Sana Malik",
		Mobile:     "03111234567",
		CNIC:       cnic,
		Gender:     "Female",
		Address:    "3 Garden Town",
		City:       "city-1",
		Branch:     "branch-1",
		Department: "dept-1",
	}
}

func listAll() ports.PrincipalFilter {
	return ports.PrincipalFilter{Page: 1, Limit: 100}
}
