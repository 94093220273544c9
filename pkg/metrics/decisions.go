package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DecisionMetrics records vendor decision outcomes and latencies.
type DecisionMetrics struct {
	duration *prometheus.HistogramVec
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewDecisionMetrics registers the decision metrics on the provided registerer.
func NewDecisionMetrics(reg prometheus.Registerer) *DecisionMetrics {
	if reg == nil {
		return &DecisionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_decision_duration_seconds",
		Help:    "Duration of vendor decision transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_decision_applied",
		Help: "Vendor decisions applied, labeled by target status.",
	}, []string{"status"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_decision_rejected",
		Help: "Vendor decisions rejected, labeled by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, applied, rejected)
	return &DecisionMetrics{
		duration: duration,
		applied:  applied,
		rejected: rejected,
	}
}

// ObserveDuration records the transaction duration for the target status.
func (d *DecisionMetrics) ObserveDuration(status string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(status)).Observe(duration.Seconds())
}

// IncApplied increments the applied counter for the target status.
func (d *DecisionMetrics) IncApplied(status string) {
	if d == nil || d.applied == nil {
		return
	}
	d.applied.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncRejected increments the rejected counter for the error code.
func (d *DecisionMetrics) IncRejected(code string) {
	if d == nil || d.rejected == nil {
		return
	}
	d.rejected.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
