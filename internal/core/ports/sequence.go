package ports

import (
	"context"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// Sequence is an atomic per-kind counter.
type Sequence interface {
	// Next atomically increments the counter of kind and returns the new value.
	Next(ctx context.Context, kind domain.Kind) (int64, error)
	// Seed raises the counter of kind to at least floor. It never lowers it.
	Seed(ctx context.Context, kind domain.Kind, floor int64) error
}
