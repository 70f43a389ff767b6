package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gossipPublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gossip",
		Name:      "publish_total",
		Help:      "Count of envelopes published to the validator topic.",
	}, []string{"validator", "kind", "status"})

	gossipReceiveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gossip",
		Name:      "receive_total",
		Help:      "Count of envelopes received from peers.",
	}, []string{"validator", "kind"})
)

// Gossip tracks metrics for the peer transport.
type Gossip struct {
	validator string
}

// NewGossip creates a Gossip collector for one validator.
func NewGossip(validator string) *Gossip {
	return &Gossip{validator: labelOrUnknown(validator)}
}

// ObservePublish records an outbound envelope.
func (m Gossip) ObservePublish(kind string, err error) {
	gossipPublishTotal.WithLabelValues(m.validator, kind, statusOf(err)).Inc()
}

// ObserveReceive records an inbound envelope.
func (m Gossip) ObserveReceive(kind string) {
	gossipReceiveTotal.WithLabelValues(m.validator, kind).Inc()
}
