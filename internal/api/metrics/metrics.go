// Package metrics defines and registers the custom Prometheus metrics of the
// travel request service. It is the single source of truth for metric names,
// labels and help strings.
//
// All metrics are registered with the default registry through promauto when
// the package is imported. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel"

// ── Travel request metrics ────────────────────────────────────────────────────

// TravelRequestsCreatedTotal counts newly created travel requests.
// Label:
//   - travel_mode: "train" or "flight"
var TravelRequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of travel requests created, by travel mode.",
	},
	[]string{"travel_mode"},
)

// StatusChangesTotal counts staff updates that changed a request's status.
// Label:
//   - status: the new status ("Pending", "Approved", "Rejected")
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of travel request status changes, by new status.",
	},
	[]string{"status"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatRequestsTotal counts chat calls by strategy and outcome.
// Labels:
//   - strategy: "rules" or "genai"
//   - result: "ok", "rate_limited", "bad_request", "error"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of chat requests, by strategy and result.",
	},
	[]string{"strategy", "result"},
)

// GenAIRequestDuration measures round trips to the generative text service.
// Label:
//   - result: "ok" or "error"
var GenAIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "genai_request_duration_seconds",
		Help:      "Duration of calls to the generative text service.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32},
	},
	[]string{"result"},
)

// StatsCacheTotal counts statistics cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of statistics cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts status audit records by outcome.
// Label:
//   - result: "written", "failed" or "dropped" (queue full)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of status audit events, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
