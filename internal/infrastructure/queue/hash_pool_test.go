package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/pkg/metrics"
)

// countingHasher records peak concurrency and returns predictable digests.
type countingHasher struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (h *countingHasher) enter() {
	n := h.inFlight.Add(1)
	for {
		p := h.peak.Load()
		if n <= p || h.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(h.delay)
	h.inFlight.Add(-1)
}

func (h *countingHasher) Hash(_ context.Context, plaintext string) (string, error) {
	h.enter()
	return "hashed:" + plaintext, nil
}

func (h *countingHasher) Verify(_ context.Context, plaintext, digest string) bool {
	h.enter()
	return digest == "hashed:"+plaintext
}

func TestHashPool_HashAndVerify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := NewHashPool(2, &countingHasher{}, zerolog.Nop())
	pool.Start(ctx)

	digest, err := pool.Hash(ctx, "pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest != "hashed:pw" {
		t.Fatalf("unexpected digest %q", digest)
	}
	if !pool.Verify(ctx, "pw", digest) {
		t.Fatalf("verify = false, want true")
	}
	if pool.Verify(ctx, "other", digest) {
		t.Fatalf("verify accepted wrong password")
	}
}

func TestHashPool_BoundsConcurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := &countingHasher{delay: 5 * time.Millisecond}
	pool := NewHashPool(3, h, zerolog.Nop())
	pool.Start(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := pool.Hash(ctx, "pw"); err != nil {
				t.Errorf("hash: %v", err)
			}
		}()
	}
	wg.Wait()

	if peak := h.peak.Load(); peak > 3 {
		t.Fatalf("expected at most 3 concurrent hashes, saw %d", peak)
	}
}

func TestHashPool_CallerCancellation(t *testing.T) {
	poolCtx, stop := context.WithCancel(context.Background())
	defer stop()

	pool := NewHashPool(1, &countingHasher{delay: 50 * time.Millisecond}, zerolog.Nop())
	pool.Start(poolCtx)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	if _, err := pool.Hash(ctx, "pw"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHashPool_Stopped(t *testing.T) {
	poolCtx, stop := context.WithCancel(context.Background())
	pool := NewHashPool(1, &countingHasher{}, zerolog.Nop())
	pool.Start(poolCtx)
	stop()

	// Wait for the pool to observe shutdown.
	<-pool.done

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := pool.Hash(ctx, "pw"); !errors.Is(err, ErrPoolStopped) {
		t.Fatalf("expected ErrPoolStopped, got %v", err)
	}
}

func TestHashPool_QueueDepthNeverNegative(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := NewHashPool(4, &countingHasher{}, zerolog.Nop())
	pool.Start(ctx)

	base := testutil.ToFloat64(metrics.HashQueueDepth)

	stop := make(chan struct{})
	var lowest atomic.Int64
	lowest.Store(int64(base))
	sampled := make(chan struct{})
	go func() {
		defer close(sampled)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if v := int64(testutil.ToFloat64(metrics.HashQueueDepth)); v < lowest.Load() {
				lowest.Store(v)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := pool.Hash(ctx, "pw"); err != nil {
				t.Errorf("hash: %v", err)
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-sampled

	if lowest.Load() < int64(base) {
		t.Fatalf("queue depth dropped to %d below its starting value %v", lowest.Load(), base)
	}
	if got := testutil.ToFloat64(metrics.HashQueueDepth); got != base {
		t.Fatalf("queue depth = %v after all jobs finished, want %v", got, base)
	}
}
