package consensus

import (
	"time"

	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger is the committed chain the engine extends.
	Ledger interface {
		Tip() model.Block
		Append(b model.Block) error
	}
	// Broadcaster sends consensus messages to every other validator.
	Broadcaster interface {
		BroadcastPrePrepare(msg codec.PrePrepare)
		BroadcastVote(v codec.Vote)
	}
	Attestor interface {
		Sign(id string, data []byte) (string, error)
		Verify(id, publicKey string, data []byte, signature string) bool
	}
	Metrics interface {
		ObserveRoundCommitted(elapsed time.Duration, operations int)
		ObserveRejected(reason string)
	}
)

// CommitListener is notified with every block the engine commits.
type CommitListener func(b model.Block)
