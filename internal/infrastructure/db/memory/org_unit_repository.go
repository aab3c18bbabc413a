package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// OrgUnitRepository keeps cities, branches and departments in insertion order.
type OrgUnitRepository struct {
	mu      sync.RWMutex
	records map[domain.OrgKind]map[string]*domain.OrgUnit
	order   map[domain.OrgKind][]string
}

func NewOrgUnitRepository() *OrgUnitRepository {
	r := &OrgUnitRepository{
		records: make(map[domain.OrgKind]map[string]*domain.OrgUnit),
		order:   make(map[domain.OrgKind][]string),
	}
	for _, kind := range domain.OrgKinds() {
		r.records[kind] = make(map[string]*domain.OrgUnit)
	}
	return r
}

func (r *OrgUnitRepository) Create(_ context.Context, u *domain.OrgUnit) (*domain.OrgUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := r.records[u.Kind]
	if !ok {
		return nil, domain.NewValidationError("unknown organization kind %q", u.Kind)
	}
	stored := u.Clone()
	stored.ID = primitive.NewObjectID().Hex()
	if stored.Updates == nil {
		stored.Updates = []domain.OrgUpdate{}
	}
	records[stored.ID] = stored
	r.order[u.Kind] = append(r.order[u.Kind], stored.ID)
	return stored.Clone(), nil
}

func (r *OrgUnitRepository) FindByID(_ context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.records[kind][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *OrgUnitRepository) List(_ context.Context, kind domain.OrgKind) ([]*domain.OrgUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.OrgUnit, 0, len(r.order[kind]))
	for _, id := range r.order[kind] {
		if u, ok := r.records[kind][id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

// Update keeps the stored id, creator, history and creation time.
func (r *OrgUnitRepository) Update(_ context.Context, u *domain.OrgUnit, entry domain.OrgUpdate) (*domain.OrgUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[u.Kind][u.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := u.Clone()
	next.CreatedBy = current.CreatedBy
	next.CreatedAt = current.CreatedAt
	next.Updates = append(append([]domain.OrgUpdate{}, current.Updates...), entry)
	r.records[u.Kind][u.ID] = next
	return next.Clone(), nil
}

func (r *OrgUnitRepository) Delete(_ context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.records[kind][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.records[kind], id)
	order := r.order[kind]
	for i, v := range order {
		if v == id {
			r.order[kind] = append(order[:i:i], order[i+1:]...)
			break
		}
	}
	return u, nil
}

func (r *OrgUnitRepository) Count(_ context.Context, kind domain.OrgKind) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records[kind])), nil
}
