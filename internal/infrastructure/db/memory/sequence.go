package memory

import (
	"context"
	"sync"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// Sequence is a mutex-guarded per-kind counter.
type Sequence struct {
	mu       sync.Mutex
	counters map[domain.Kind]int64
}

func NewSequence() *Sequence {
	return &Sequence{counters: make(map[domain.Kind]int64)}
}

func (s *Sequence) Next(ctx context.Context, kind domain.Kind) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[kind]++
	return s.counters[kind], nil
}

func (s *Sequence) Seed(_ context.Context, kind domain.Kind, floor int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if floor > s.counters[kind] {
		s.counters[kind] = floor
	}
	return nil
}
