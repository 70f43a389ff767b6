package batch

import (
	"errors"
	"time"
)

// Config holds the DABP parameters.
type Config struct {
	MinBatch  int
	MaxBatch  int
	BaseBatch int

	MaxLatency       time.Duration
	MaxFlushInterval time.Duration
	// Bounds for the adaptive MaxFlushInterval.
	FlushIntervalFloor   time.Duration
	FlushIntervalCeiling time.Duration
	TimerFloor           time.Duration

	ProposalDelayMin time.Duration
	ProposalDelayMax time.Duration

	ArrivalWindow  time.Duration
	InitialAvgRate float64
	InitialLatency time.Duration
	LatencyHistory int
	DedupeLimit    int
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		MinBatch:             50,
		MaxBatch:             200,
		BaseBatch:            100,
		MaxLatency:           3 * time.Second,
		MaxFlushInterval:     time.Second,
		FlushIntervalFloor:   50 * time.Millisecond,
		FlushIntervalCeiling: time.Second,
		TimerFloor:           60 * time.Millisecond,
		ProposalDelayMin:     50 * time.Millisecond,
		ProposalDelayMax:     500 * time.Millisecond,
		ArrivalWindow:        30 * time.Second,
		InitialAvgRate:       10,
		InitialLatency:       500 * time.Millisecond,
		LatencyHistory:       50,
		DedupeLimit:          1000,
	}
}

// Validate checks that the parameters are usable.
func (c Config) Validate() error {
	switch {
	case c.MinBatch <= 0 || c.MaxBatch < c.MinBatch:
		return errors.New("batch bounds must satisfy 0 < min <= max")
	case c.BaseBatch < c.MinBatch || c.BaseBatch > c.MaxBatch:
		return errors.New("base batch must lie within bounds")
	case c.MaxLatency <= 0 || c.MaxFlushInterval <= 0 || c.ArrivalWindow <= 0:
		return errors.New("latency, flush interval and arrival window must be positive")
	case c.FlushIntervalFloor <= 0 || c.FlushIntervalCeiling < c.FlushIntervalFloor:
		return errors.New("flush interval bounds must satisfy 0 < floor <= ceiling")
	case c.ProposalDelayMax < c.ProposalDelayMin:
		return errors.New("proposal delay bounds inverted")
	case c.LatencyHistory <= 0 || c.DedupeLimit <= 0:
		return errors.New("latency history and dedupe limit must be positive")
	}
	return nil
}
