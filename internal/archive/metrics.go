package archive

import "time"

// Metrics receives writer observations.
type Metrics interface {
	ObserveFlush(err error, blocks int, started time.Time)
	ObserveDropped()
	SetArchivedHeight(height uint64)
}

type nopMetrics struct{}

func (nopMetrics) ObserveFlush(error, int, time.Time) {}
func (nopMetrics) ObserveDropped() {}
func (nopMetrics) SetArchivedHeight(uint64) {}
