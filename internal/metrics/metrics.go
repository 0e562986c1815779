// Package metrics defines and registers all custom Prometheus metrics for the
// parcel service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parcels"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// ParcelsCreatedTotal counts newly booked parcels.
// Labels:
//   - delivery_type: "STANDARD", "EXPRESS", "SAME_DAY" or "OVERNIGHT"
//   - parcel_type: "DOCUMENT", "PACKAGE", …
var ParcelsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of parcels booked, by delivery and parcel type.",
	},
	[]string{"delivery_type", "parcel_type"},
)

// StatusTransitionsTotal counts applied status updates.
// Labels:
//   - from: the status before the update
//   - to: the status after the update
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of parcel status updates, by previous and new status.",
	},
	[]string{"from", "to"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsPublishedTotal counts lifecycle events handed to the broker.
// Labels:
//   - type: event type (e.g. "parcel.created")
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of lifecycle events published, labelled by result.",
	},
	[]string{"type", "result"},
)

// EventsDroppedTotal counts events discarded because a worker buffer was full
// or because shutdown ran out of time to publish them.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of lifecycle events dropped due to a full dispatcher buffer or an expired shutdown drain.",
	},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventPublishDuration measures how long a single broker publish takes.
// Label:
//   - type: event type
var EventPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_publish_duration_seconds",
		Help:      "Duration of a lifecycle event publish, from dequeue to broker ack.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts tracking-number cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of tracking-number cache lookups, labelled by result.",
	},
	[]string{"result"},
)
