package queue

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/pkg/metrics"
)

const channelBuffer = 256

// ErrPoolStopped is returned for jobs submitted after the pool shut down.
var ErrPoolStopped = errors.New("hash pool stopped")

type jobKind int

const (
	jobHash jobKind = iota
	jobVerify
)

type hashJob struct {
	ctx       context.Context
	kind      jobKind
	plaintext string
	digest    string
	result    chan hashResult
}

type hashResult struct {
	digest string
	ok     bool
	err    error
}

// HashPool runs password hashing on a fixed set of workers so that bursts of
// registrations or logins cannot occupy every CPU at once. It implements
// ports.PasswordHasher by delegating to the wrapped hasher.
type HashPool struct {
	jobs    chan hashJob
	hasher  ports.PasswordHasher
	workers int
	done    chan struct{}
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewHashPool(numWorkers int, hasher ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &HashPool{
		jobs:    make(chan hashJob, channelBuffer),
		hasher:  hasher,
		workers: numWorkers,
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs submitted afterwards fail with ErrPoolStopped.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.done)
	}()
}

// Hash queues a hashing job and waits for its result or for ctx to end.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, hashJob{kind: jobHash, plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.digest, res.err
}

// Verify queues a comparison. A cancelled or failed job reports false.
func (p *HashPool) Verify(ctx context.Context, plaintext, digest string) bool {
	res, err := p.submit(ctx, hashJob{kind: jobVerify, plaintext: plaintext, digest: digest})
	if err != nil {
		p.log.Warn().Err(err).Msg("password verification not completed")
		return false
	}
	return res.ok
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	job.ctx = ctx
	job.result = make(chan hashResult, 1)

	select {
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	default:
	}

	// Counted before the send so a worker's Dec never runs first.
	metrics.HashQueueDepth.Inc()
	select {
	case p.jobs <- job:
	case <-ctx.Done():
		metrics.HashQueueDepth.Dec()
		return hashResult{}, ctx.Err()
	case <-p.done:
		metrics.HashQueueDepth.Dec()
		return hashResult{}, ErrPoolStopped
	}

	select {
	case res := <-job.result:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.HashQueueDepth.Dec()
			if job.ctx.Err() != nil {
				// Caller already gave up.
				continue
			}
			job.result <- p.run(job, id)
		}
	}
}

func (p *HashPool) run(job hashJob, id int) hashResult {
	start := time.Now()
	switch job.kind {
	case jobVerify:
		ok := p.hasher.Verify(job.ctx, job.plaintext, job.digest)
		metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
		return hashResult{ok: ok}
	default:
		digest, err := p.hasher.Hash(job.ctx, job.plaintext)
		metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
		if err != nil {
			p.log.Error().Err(err).Int("worker_id", id).Msg("password hashing failed")
		}
		return hashResult{digest: digest, err: err}
	}
}
