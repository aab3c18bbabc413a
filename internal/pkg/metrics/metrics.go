// Package metrics defines and registers all custom Prometheus metrics for the
// personnel API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "personnel"

// ── Registration / authentication ────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Labels:
//   - kind: principal kind ("employee", "seeker", "user")
//   - outcome: "created", "invalid", "conflict" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// LoginsTotal counts login attempts.
// Label outcome: "success", "invalid_credentials" or "error".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// GateDecisionsTotal counts Role Gate outcomes.
// Label outcome: "allowed", "no_token", "invalid_token", "principal_gone",
// "role_denied" or "error".
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of role gate decisions, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// SequenceAllocationsTotal counts business identifiers handed out.
var SequenceAllocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sequence_allocations_total",
		Help:      "Total number of sequential business identifiers allocated, by kind.",
	},
	[]string{"kind"},
)

// ── Password hashing pool ────────────────────────────────────────────────────

// PasswordHashDuration measures a single bcrypt operation inside the pool.
// Label op: "hash" or "verify".
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt operations executed by the hash pool.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"op"},
)

// HashQueueDepth tracks jobs waiting for a hash worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password jobs waiting for a worker.",
	},
)

// ── HTTP ─────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests by route template and status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency by route template.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
