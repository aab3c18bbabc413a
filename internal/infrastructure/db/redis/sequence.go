package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

// Sequence keeps per-kind counters in Redis. INCR is atomic, so concurrent
// allocations never share a value.
// Key format: seq:<kind>
type Sequence struct {
	client  *redis.Client
	timeout time.Duration
}

func NewSequence(client *redis.Client, timeout time.Duration) *Sequence {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sequence{client: client, timeout: timeout}
}

func (s *Sequence) Next(ctx context.Context, kind domain.Kind) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.client.Incr(ctx, s.key(kind)).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence next: %w", err)
	}
	return n, nil
}

// seedScript raises the counter to ARGV[1] without ever lowering it.
var seedScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
if floor > current then
  redis.call("SET", KEYS[1], floor)
  return floor
end
return current
`)

func (s *Sequence) Seed(ctx context.Context, kind domain.Kind, floor int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := seedScript.Run(ctx, s.client, []string{s.key(kind)}, floor).Err(); err != nil {
		return fmt.Errorf("sequence seed: %w", err)
	}
	return nil
}

func (s *Sequence) key(kind domain.Kind) string {
	return fmt.Sprintf("seq:%s", kind)
}
