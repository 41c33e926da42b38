package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dropout"

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	riskAssessments      *prometheus.CounterVec
	riskAssessmentErrors *prometheus.CounterVec
	alertsCreated        *prometheus.CounterVec
	alertTransitions     *prometheus.CounterVec
	sweepRuns            *prometheus.CounterVec
	sweepEscalations     prometheus.Counter
	sweepDuration        prometheus.Histogram
	notifications        *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		riskAssessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessments_total",
			Help:      "Completed risk assessments by bucket.",
		}, []string{"bucket"}),
		riskAssessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessment_errors_total",
			Help:      "Failed risk assessments by reason.",
		}, []string{"reason"}),
		alertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Alerts created by severity.",
		}, []string{"severity"}),
		alertTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_transitions_total",
			Help:      "Applied alert state transitions by target status.",
		}, []string{"to"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Escalation sweep passes by result.",
		}, []string{"result"}),
		sweepEscalations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_escalations_total",
			Help:      "Alerts escalated by sweeps.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of escalation sweep passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification dispatches by kind and result.",
		}, []string{"kind", "result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.riskAssessments,
			m.riskAssessmentErrors,
			m.alertsCreated,
			m.alertTransitions,
			m.sweepRuns,
			m.sweepEscalations,
			m.sweepDuration,
			m.notifications,
		)
	}
	return m
}

func (m *Metrics) RiskAssessed(bucket string) {
	if m == nil {
		return
	}
	m.riskAssessments.WithLabelValues(bucket).Inc()
}

func (m *Metrics) RiskFailed(reason string) {
	if m == nil {
		return
	}
	m.riskAssessmentErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) AlertCreated(severity string) {
	if m == nil {
		return
	}
	m.alertsCreated.WithLabelValues(severity).Inc()
}

func (m *Metrics) AlertTransitioned(to string) {
	if m == nil {
		return
	}
	m.alertTransitions.WithLabelValues(to).Inc()
}

// SweepFinished records one pass. result is "ok", "error" or "skipped".
func (m *Metrics) SweepFinished(result string, escalated int, took time.Duration) {
	if m == nil {
		return
	}
	m.sweepRuns.WithLabelValues(result).Inc()
	m.sweepEscalations.Add(float64(escalated))
	m.sweepDuration.Observe(took.Seconds())
}

// Notified records one dispatch. result is "sent", "failed" or "skipped".
func (m *Metrics) Notified(kind, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, result).Inc()
}
