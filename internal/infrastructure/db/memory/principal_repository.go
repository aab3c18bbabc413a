// Package memory is a process-local implementation of the store ports. It
// enforces the same uniqueness and sequencing guarantees as the Mongo
// adapter and backs local runs and concurrency tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

type uniqueIndex map[domain.NaturalKey]map[string]string // key -> value -> id

// PrincipalRepository keeps principals per kind in maps guarded by one mutex.
// Every write checks and claims natural keys in the same critical section.
type PrincipalRepository struct {
	mu      sync.RWMutex
	records map[domain.Kind]map[string]*domain.Principal
	unique  map[domain.Kind]uniqueIndex
	order   map[domain.Kind][]string
}

func NewPrincipalRepository() *PrincipalRepository {
	r := &PrincipalRepository{
		records: make(map[domain.Kind]map[string]*domain.Principal),
		unique:  make(map[domain.Kind]uniqueIndex),
		order:   make(map[domain.Kind][]string),
	}
	for _, kind := range domain.Kinds() {
		r.records[kind] = make(map[string]*domain.Principal)
		idx := make(uniqueIndex)
		policy, _ := kind.Policy()
		for _, key := range policy.NaturalKeys {
			idx[key] = make(map[string]string)
		}
		r.unique[kind] = idx
	}
	return r
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// conflict returns the first natural key of p held by a different id.
// Callers hold r.mu.
func (r *PrincipalRepository) conflict(p *domain.Principal) domain.NaturalKey {
	policy, _ := p.Kind.Policy()
	idx := r.unique[p.Kind]
	for _, key := range policy.NaturalKeys {
		v := p.KeyValue(key)
		if v == "" {
			continue
		}
		if owner, taken := idx[key][v]; taken && owner != p.ID {
			return key
		}
	}
	if p.BusinessID != "" {
		for id, other := range r.records[p.Kind] {
			if id != p.ID && other.BusinessID == p.BusinessID {
				return domain.KeyBusinessID
			}
		}
	}
	return ""
}

func (r *PrincipalRepository) claim(p *domain.Principal) {
	policy, _ := p.Kind.Policy()
	for _, key := range policy.NaturalKeys {
		if v := p.KeyValue(key); v != "" {
			r.unique[p.Kind][key][v] = p.ID
		}
	}
}

func (r *PrincipalRepository) release(p *domain.Principal) {
	policy, _ := p.Kind.Policy()
	for _, key := range policy.NaturalKeys {
		if v := p.KeyValue(key); v != "" && r.unique[p.Kind][key][v] == p.ID {
			delete(r.unique[p.Kind][key], v)
		}
	}
}

func (r *PrincipalRepository) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	if !p.Kind.Valid() {
		return nil, domain.ErrUnknownKind
	}
	rec := clonePrincipal(p)
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if key := r.conflict(rec); key != "" {
		return nil, &domain.ConflictError{Kind: rec.Kind, Key: key}
	}
	r.records[rec.Kind][rec.ID] = rec
	r.order[rec.Kind] = append(r.order[rec.Kind], rec.ID)
	r.claim(rec)
	return clonePrincipal(rec), nil
}

func (r *PrincipalRepository) FindByID(_ context.Context, kind domain.Kind, id string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.records[kind][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePrincipal(p), nil
}

func (r *PrincipalRepository) findBy(kind domain.Kind, key domain.NaturalKey, value string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if value == "" {
		return nil, domain.ErrNotFound
	}
	for _, id := range r.order[kind] {
		p := r.records[kind][id]
		if p.KeyValue(key) == value {
			return clonePrincipal(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *PrincipalRepository) FindByEmail(_ context.Context, kind domain.Kind, email string) (*domain.Principal, error) {
	return r.findBy(kind, domain.KeyEmail, email)
}

func (r *PrincipalRepository) FindByCNIC(_ context.Context, kind domain.Kind, cnic string) (*domain.Principal, error) {
	return r.findBy(kind, domain.KeyCNIC, cnic)
}

func (r *PrincipalRepository) FindConflict(_ context.Context, p *domain.Principal) (domain.NaturalKey, error) {
	if !p.Kind.Valid() {
		return "", domain.ErrUnknownKind
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflict(p), nil
}

func (r *PrincipalRepository) List(_ context.Context, kind domain.Kind, f ports.PrincipalFilter) ([]*domain.Principal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Principal
	for _, id := range r.order[kind] {
		p := r.records[kind][id]
		if f.CNIC != "" && p.CNIC != f.CNIC ||
			f.BusinessID != "" && p.BusinessID != f.BusinessID ||
			f.Email != "" && p.Email != f.Email ||
			f.Mobile != "" && p.Mobile != f.Mobile {
			continue
		}
		matched = append(matched, p)
	}

	// Newest first, matching the Mongo adapter.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}

	out := make([]*domain.Principal, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, clonePrincipal(p))
	}
	return out, total, nil
}

func (r *PrincipalRepository) Update(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[p.Kind][p.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if key := r.conflict(p); key != "" {
		return nil, &domain.ConflictError{Kind: p.Kind, Key: key}
	}

	next := clonePrincipal(p)
	// Digest, business id and creation time are not touched by profile updates.
	next.PasswordHash = current.PasswordHash
	next.BusinessID = current.BusinessID
	next.CreatedAt = current.CreatedAt

	r.release(current)
	r.records[p.Kind][p.ID] = next
	r.claim(next)
	return clonePrincipal(next), nil
}

func (r *PrincipalRepository) UpdatePasswordHash(_ context.Context, kind domain.Kind, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[kind][id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PasswordHash = hash
	return nil
}

func (r *PrincipalRepository) Delete(_ context.Context, kind domain.Kind, id string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[kind][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.release(p)
	delete(r.records[kind], id)
	ids := r.order[kind]
	for i, other := range ids {
		if other == id {
			r.order[kind] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return clonePrincipal(p), nil
}

// MaxBusinessID compares ids as strings, like the Mongo adapter's sort.
func (r *PrincipalRepository) MaxBusinessID(_ context.Context, kind domain.Kind) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max string
	for _, p := range r.records[kind] {
		if p.BusinessID > max {
			max = p.BusinessID
		}
	}
	return max, nil
}
