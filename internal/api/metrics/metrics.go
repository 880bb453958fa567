// Package metrics defines and registers all custom Prometheus metrics for
// the terminal backend. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "silvanum"

// ── Handshake metrics ─────────────────────────────────────────────────────────

// PINChecksTotal counts PIN verification attempts.
// Label:
//   - result: "ok", "rejected", or "unavailable"
var PINChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pin_checks_total",
		Help:      "Total number of PIN verification attempts, by result.",
	},
	[]string{"result"},
)

// BindingsTotal counts bind attempts by outcome. All outcomes are success;
// "already_bound_other" flags the first-bind-wins conflict case.
var BindingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bindings_total",
		Help:      "Total number of identity bind attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ResolutionsTotal counts identity resolutions.
// Label:
//   - outcome: "identity" (bound, active employee) or "none"
var ResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Total number of identity resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsTotal counts anonymous session establishment.
// Label:
//   - kind: "issued" (fresh session) or "resumed"
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of anonymous sessions established, by kind.",
	},
	[]string{"kind"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker
// channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Terminal data metrics ─────────────────────────────────────────────────────

// CustomersCreatedTotal counts newly registered customers.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// AppointmentsCreatedTotal counts newly scheduled appointment sessions.
var AppointmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointment sessions created.",
	},
)
