package validator

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/batch"
	"github.com/goodnatureofminers/roadledger/internal/consensus"
	"github.com/goodnatureofminers/roadledger/internal/credibility"
)

// Config wires one validator.
type Config struct {
	ID          string
	ProposerID  string
	Validators  []consensus.Member
	Batch       batch.Config
	Credibility credibility.Config
	// HistoryWindow bounds each vehicle's outcome history.
	HistoryWindow int
	// SeenEnvelopes sizes the redundant-delivery cache.
	SeenEnvelopes int
	// AdaptiveInterval is how often the proposer re-estimates network
	// latency; zero disables the periodic update.
	AdaptiveInterval time.Duration
	// TPSWindow is the span over which the current throughput is measured.
	TPSWindow time.Duration
}

// DefaultConfig returns a single-validator configuration for id.
func DefaultConfig(id, publicKey string) Config {
	return Config{
		ID:               id,
		ProposerID:       id,
		Validators:       []consensus.Member{{ID: id, PublicKey: publicKey}},
		Batch:            batch.DefaultConfig(),
		Credibility:      credibility.DefaultConfig(),
		HistoryWindow:    20,
		SeenEnvelopes:    8192,
		AdaptiveInterval: 5 * time.Second,
		TPSWindow:        time.Minute,
	}
}

func (c Config) validate() error {
	switch {
	case c.ID == "":
		return errors.New("validator id is required")
	case c.SeenEnvelopes <= 0:
		return errors.New("seen envelope cache size must be positive")
	case c.AdaptiveInterval < 0:
		return errors.New("adaptive interval must not be negative")
	case c.TPSWindow <= 0:
		return errors.New("tps window must be positive")
	}
	return nil
}
