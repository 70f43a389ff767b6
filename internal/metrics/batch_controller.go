// Package metrics exposes application metrics collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roadledger"

var (
	batchFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch_controller",
		Name:      "flush_total",
		Help:      "Count of batch flushes by trigger.",
	}, []string{"validator", "trigger"})

	batchFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batch_controller",
		Name:      "flush_size",
		Help:      "Number of operations per flushed batch.",
		Buckets:   prometheus.LinearBuckets(10, 20, 10),
	}, []string{"validator", "trigger"})

	batchTargetSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "batch_controller",
		Name:      "target_size",
		Help:      "Adaptive target batch size at the last flush.",
	}, []string{"validator"})
)

// BatchController tracks metrics for the batch admission controller.
type BatchController struct {
	validator string
}

// NewBatchController creates a BatchController collector for one validator.
func NewBatchController(validator string) *BatchController {
	return &BatchController{validator: labelOrUnknown(validator)}
}

// ObserveFlush records a flush, its trigger and the target it was measured against.
func (m BatchController) ObserveFlush(trigger string, size, target int) {
	batchFlushTotal.WithLabelValues(m.validator, trigger).Inc()
	batchFlushSize.WithLabelValues(m.validator, trigger).Observe(float64(size))
	batchTargetSize.WithLabelValues(m.validator).Set(float64(target))
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
