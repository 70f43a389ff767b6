package validator

import (
	"github.com/goodnatureofminers/roadledger/internal/batch"
	"github.com/goodnatureofminers/roadledger/internal/consensus"
	"github.com/goodnatureofminers/roadledger/internal/credibility"
	"github.com/goodnatureofminers/roadledger/internal/transport"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Transport sends an envelope to one peer or to the validator group.
	Transport interface {
		Send(e transport.Envelope) error
	}
	Metrics interface {
		ObserveEnvelope(kind, result string)
		ObserveHeight(height uint64)
	}
	Attestor interface {
		Sign(id string, data []byte) (string, error)
		Verify(id, publicKey string, data []byte, signature string) bool
	}
)

// Instruments bundles the per-component metrics sinks.
type Instruments struct {
	Node        Metrics
	Batch       batch.Metrics
	Consensus   consensus.Metrics
	Credibility credibility.Metrics
}
