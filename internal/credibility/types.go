package credibility

import "github.com/goodnatureofminers/roadledger/internal/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger is the committed vehicle state the engine scores against.
	Ledger interface {
		PublicKey(vehicleID string) (string, bool)
		Reputation(vehicleID string) (float64, bool)
		History(vehicleID string) []uint8
	}
	// Submitter receives the operations a decision emits.
	Submitter interface {
		Submit(op model.Operation) error
	}
	Verifier interface {
		Verify(id, publicKey string, data []byte, signature string) bool
	}
	Metrics interface {
		ObserveDetection(class string)
		ObserveDecision(verdict string, reports int)
		ObserveReputationDelta(delta float64, correct bool)
		ObserveDropped(reason string)
	}
)
