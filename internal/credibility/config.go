package credibility

import (
	"errors"
	"time"
)

// Config holds the clustering and scoring parameters.
type Config struct {
	// VerifyDelay models signature-check latency before a report is clustered.
	VerifyDelay       time.Duration
	DistanceThreshold float64
	TimeThreshold     time.Duration
	DecisionDelay     time.Duration

	Gamma             float64
	ReliabilityWeight float64
	VolatilityWeight  float64
	HistoryWindow     int

	ConfidenceThreshold float64
	Alpha               float64
	Beta                float64

	// PendingTTL bounds how long an emitted reputation update counts towards
	// later decisions before it shows up on chain.
	PendingTTL time.Duration
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		DistanceThreshold:   50,
		TimeThreshold:       10 * time.Second,
		DecisionDelay:       5 * time.Second,
		Gamma:               0.9,
		ReliabilityWeight:   0.6,
		VolatilityWeight:    0.4,
		HistoryWindow:       20,
		ConfidenceThreshold: 0.70,
		Alpha:               0.05,
		Beta:                0.20,
		PendingTTL:          10 * time.Second,
	}
}

// Validate checks that the parameters are usable.
func (c Config) Validate() error {
	switch {
	case c.VerifyDelay < 0 || c.DecisionDelay < 0:
		return errors.New("delays must not be negative")
	case c.DistanceThreshold <= 0 || c.TimeThreshold <= 0:
		return errors.New("cluster thresholds must be positive")
	case c.Gamma <= 0 || c.Gamma > 1:
		return errors.New("gamma must lie in (0, 1]")
	case c.ReliabilityWeight < 0 || c.VolatilityWeight < 0 || c.ReliabilityWeight+c.VolatilityWeight > 1:
		return errors.New("suspicion weights must be non-negative and sum to at most 1")
	case c.HistoryWindow <= 0:
		return errors.New("history window must be positive")
	case c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1:
		return errors.New("confidence threshold must lie in [0, 1]")
	case c.Alpha < 0 || c.Alpha > 1 || c.Beta < 0 || c.Beta > 1:
		return errors.New("alpha and beta must lie in [0, 1]")
	case c.PendingTTL <= 0:
		return errors.New("pending update ttl must be positive")
	}
	return nil
}
