package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/pkg/metrics"
)

// BusinessIDAllocator hands out <PREFIX>-<n> identifiers from an atomic
// per-kind sequence. Two concurrent callers never receive the same value.
type BusinessIDAllocator struct {
	seq  ports.Sequence
	repo ports.PrincipalRepository
	log  zerolog.Logger
}

func NewBusinessIDAllocator(seq ports.Sequence, repo ports.PrincipalRepository, log zerolog.Logger) *BusinessIDAllocator {
	return &BusinessIDAllocator{seq: seq, repo: repo, log: log}
}

// Next allocates the next business id of kind. Kinds without a prefix
// return "".
func (a *BusinessIDAllocator) Next(ctx context.Context, kind domain.Kind) (string, error) {
	policy, ok := kind.Policy()
	if !ok {
		return "", domain.ErrUnknownKind
	}
	if policy.BusinessPrefix == "" {
		return "", nil
	}

	n, err := a.seq.Next(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("allocate business id: %w", err)
	}
	metrics.SequenceAllocationsTotal.WithLabelValues(string(kind)).Inc()
	return domain.FormatBusinessID(policy.BusinessPrefix, n), nil
}

// Seed raises the sequence of every prefixed kind to the greatest business id
// already stored, so a store populated before the counter existed continues
// from its last value. A malformed stored suffix counts as zero.
func (a *BusinessIDAllocator) Seed(ctx context.Context) error {
	for _, kind := range domain.Kinds() {
		policy, _ := kind.Policy()
		if policy.BusinessPrefix == "" {
			continue
		}

		last, err := a.repo.MaxBusinessID(ctx, kind)
		if err != nil {
			return fmt.Errorf("seed %s sequence: %w", kind, err)
		}

		var base int64
		if last != "" {
			base, err = domain.ParseBusinessID(policy.BusinessPrefix, last)
			if err != nil {
				a.log.Warn().Err(err).Str("kind", string(kind)).Msg("unparsable stored business id, seeding from zero")
				base = 0
			}
		}

		if err := a.seq.Seed(ctx, kind, base); err != nil {
			return fmt.Errorf("seed %s sequence: %w", kind, err)
		}
		a.log.Info().Str("kind", string(kind)).Int64("base", base).Msg("business id sequence seeded")
	}
	return nil
}
