package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive_writer",
		Name:      "flush_total",
		Help:      "Count of archive flushes.",
	}, []string{"validator", "status"})

	archiveFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archive_writer",
		Name:      "flush_duration_seconds",
		Help:      "Duration of writing one batch of blocks to every archive table.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"validator", "status"})

	archiveFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archive_writer",
		Name:      "flush_blocks",
		Help:      "Number of blocks written per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"validator"})

	archiveDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive_writer",
		Name:      "dropped_blocks_total",
		Help:      "Committed blocks not archived because the queue was full.",
	}, []string{"validator"})

	archiveHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "archive_writer",
		Name:      "archived_height",
		Help:      "Highest block height written to the archive.",
	}, []string{"validator"})
)

type ArchiveWriter struct {
	validator string
}

func NewArchiveWriter(validator string) *ArchiveWriter {
	if validator == "" {
		validator = "unknown"
	}
	return &ArchiveWriter{validator: validator}
}

func (m ArchiveWriter) ObserveFlush(err error, blocks int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	archiveFlushTotal.WithLabelValues(m.validator, status).Inc()
	archiveFlushDuration.WithLabelValues(m.validator, status).Observe(time.Since(started).Seconds())
	archiveFlushSize.WithLabelValues(m.validator).Observe(float64(blocks))
}

func (m ArchiveWriter) ObserveDropped() {
	archiveDroppedTotal.WithLabelValues(m.validator).Inc()
}

func (m ArchiveWriter) SetArchivedHeight(height uint64) {
	archiveHeight.WithLabelValues(m.validator).Set(float64(height))
}
