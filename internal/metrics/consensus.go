package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consensusRoundsCommittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "rounds_committed_total",
		Help:      "Count of consensus rounds that reached commit.",
	}, []string{"validator"})

	consensusRoundDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "round_duration_seconds",
		Help:      "Time from round creation to commit.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"validator"})

	consensusCommittedOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "committed_operations_total",
		Help:      "Count of operations applied through committed blocks.",
	}, []string{"validator"})

	consensusRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "rejected_total",
		Help:      "Count of dropped consensus messages by reason.",
	}, []string{"validator", "reason"})
)

// Consensus tracks metrics for the consensus engine.
type Consensus struct {
	validator string
}

// NewConsensus creates a Consensus collector for one validator.
func NewConsensus(validator string) *Consensus {
	return &Consensus{validator: labelOrUnknown(validator)}
}

// ObserveRoundCommitted records a finished round.
func (m Consensus) ObserveRoundCommitted(elapsed time.Duration, operations int) {
	consensusRoundsCommittedTotal.WithLabelValues(m.validator).Inc()
	consensusRoundDuration.WithLabelValues(m.validator).Observe(elapsed.Seconds())
	consensusCommittedOperations.WithLabelValues(m.validator).Add(float64(operations))
}

// ObserveRejected records a dropped message.
func (m Consensus) ObserveRejected(reason string) {
	consensusRejectedTotal.WithLabelValues(m.validator, reason).Inc()
}
