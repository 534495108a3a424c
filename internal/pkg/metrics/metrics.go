// Package metrics defines and registers all custom Prometheus metrics for the
// corporate banking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// through promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "corporate_banking"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "ok", "duplicate", "invalid_credentials", "deactivated", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// UserStatusChangesTotal counts admin activations and deactivations.
// Label:
//   - active: "true" or "false"
var UserStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_status_changes_total",
		Help:      "Total number of user activations and deactivations.",
	},
	[]string{"active"},
)

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientsCreatedTotal counts onboarded clients.
var ClientsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of corporate clients onboarded.",
	},
)

// ── Credit metrics ────────────────────────────────────────────────────────────

// CreditRequestsCreatedTotal counts submitted credit requests.
// Label:
//   - replayed: "true" when an Idempotency-Key matched an earlier submission
var CreditRequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_requests_created_total",
		Help:      "Total number of credit requests submitted.",
	},
	[]string{"replayed"},
)

// CreditDecisionsTotal counts reviewer status changes.
// Label:
//   - status: the status set by the reviewer ("Pending", "Approved", "Rejected")
var CreditDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_decisions_total",
		Help:      "Total number of credit request status changes, by resulting status.",
	},
	[]string{"status"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of decisions waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of status changes pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long recording one status change takes.
// Label:
//   - result: "ok" or "error"
var AuditWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of writing one status change to the audit trail.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
