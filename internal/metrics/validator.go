package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validatorEnvelopesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "envelopes_total",
		Help:      "Count of delivered envelopes by kind and result.",
	}, []string{"validator", "kind", "result"})

	validatorChainHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "chain_height",
		Help:      "Height of the committed chain tip.",
	}, []string{"validator"})
)

// Validator tracks node-level metrics.
type Validator struct {
	validator string
}

// NewValidator creates a Validator collector.
func NewValidator(validator string) *Validator {
	return &Validator{validator: labelOrUnknown(validator)}
}

// ObserveEnvelope records how a delivered envelope was handled.
func (m Validator) ObserveEnvelope(kind, result string) {
	validatorEnvelopesTotal.WithLabelValues(m.validator, kind, result).Inc()
}

// ObserveHeight records the committed tip height.
func (m Validator) ObserveHeight(height uint64) {
	validatorChainHeight.WithLabelValues(m.validator).Set(float64(height))
}
