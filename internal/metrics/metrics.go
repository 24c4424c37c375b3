// Package metrics exposes Prometheus instrumentation for reconciliation and sync runs.
//
// Metrics are registered on the Registerer handed to New, so tests can use a
// private registry and the process wires the default one. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Reconciled       *prometheus.CounterVec
	ReconcileErrors  *prometheus.CounterVec
	SyncRuns         *prometheus.CounterVec
	SyncItemFailures *prometheus.CounterVec
	SyncDuration     *prometheus.HistogramVec
	RemoteRequests   *prometheus.CounterVec
	BreakerState     *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Reconciled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_syncer",
			Name:      "reconciled_total",
			Help:      "Records reconciled into the local store, by entity kind and outcome.",
		}, []string{"entity", "outcome"}),
		ReconcileErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_syncer",
			Name:      "reconcile_errors_total",
			Help:      "Reconcile calls that failed against the local store.",
		}, []string{"entity"}),
		SyncRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_syncer",
			Name:      "sync_runs_total",
			Help:      "Synchronizer runs by job and result.",
		}, []string{"job", "result"}),
		SyncItemFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_syncer",
			Name:      "sync_item_failures_total",
			Help:      "Items skipped inside a sync run after a failure.",
		}, []string{"job"}),
		SyncDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "media_syncer",
			Name:      "sync_duration_seconds",
			Help:      "Wall time of synchronizer runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"job"}),
		RemoteRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_syncer",
			Name:      "remote_requests_total",
			Help:      "Requests issued to remote services, by service and result.",
		}, []string{"service", "result"}),
		BreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "media_syncer",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
	}
}

func (m *Metrics) ObserveReconcile(entity, outcome string) {
	if m == nil {
		return
	}
	m.Reconciled.WithLabelValues(entity, outcome).Inc()
}

func (m *Metrics) ObserveReconcileError(entity string) {
	if m == nil {
		return
	}
	m.ReconcileErrors.WithLabelValues(entity).Inc()
}

func (m *Metrics) ObserveSync(job string, err error, elapsed time.Duration, itemFailures int) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.SyncRuns.WithLabelValues(job, result).Inc()
	m.SyncDuration.WithLabelValues(job).Observe(elapsed.Seconds())
	if itemFailures > 0 {
		m.SyncItemFailures.WithLabelValues(job).Add(float64(itemFailures))
	}
}

func (m *Metrics) ObserveRemote(service string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.RemoteRequests.WithLabelValues(service, result).Inc()
}

func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(state)
}
