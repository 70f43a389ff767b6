package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	credibilityDetectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "credibility",
		Name:      "detections_total",
		Help:      "Count of scored reports by detection class (tp, fp, tn, fn).",
	}, []string{"validator", "class"})

	credibilityDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "credibility",
		Name:      "decisions_total",
		Help:      "Count of cluster decisions by verdict.",
	}, []string{"validator", "verdict"})

	credibilityClusterSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "credibility",
		Name:      "cluster_size",
		Help:      "Number of reports per decided cluster.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"validator"})

	credibilityReputationDelta = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "credibility",
		Name:      "reputation_delta",
		Help:      "Reputation change emitted per reporter.",
		Buckets:   prometheus.LinearBuckets(-0.35, 0.05, 15),
	}, []string{"validator", "outcome"})

	credibilityDroppedReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "credibility",
		Name:      "dropped_reports_total",
		Help:      "Count of reports dropped before clustering.",
	}, []string{"validator", "reason"})
)

// Credibility tracks metrics for the credibility engine.
type Credibility struct {
	validator string
}

// NewCredibility creates a Credibility collector for one validator.
func NewCredibility(validator string) *Credibility {
	return &Credibility{validator: labelOrUnknown(validator)}
}

// ObserveDetection records one report classification.
func (m Credibility) ObserveDetection(class string) {
	credibilityDetectionsTotal.WithLabelValues(m.validator, class).Inc()
}

// ObserveDecision records a cluster verdict.
func (m Credibility) ObserveDecision(verdict string, reports int) {
	credibilityDecisionsTotal.WithLabelValues(m.validator, verdict).Inc()
	credibilityClusterSize.WithLabelValues(m.validator).Observe(float64(reports))
}

// ObserveReputationDelta records the change emitted for one reporter.
func (m Credibility) ObserveReputationDelta(delta float64, correct bool) {
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	credibilityReputationDelta.WithLabelValues(m.validator, outcome).Observe(delta)
}

// ObserveDropped records a report rejected before clustering.
func (m Credibility) ObserveDropped(reason string) {
	credibilityDroppedReportsTotal.WithLabelValues(m.validator, reason).Inc()
}
