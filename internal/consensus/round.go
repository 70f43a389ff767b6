package consensus

import (
	"slices"
	"strings"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

// Phase is a round's progress.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrePrepareSent
	PhasePrePrepareReceived
	PhasePrepareSent
	PhaseCommitSent
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrePrepareSent:
		return "pre-prepare-sent"
	case PhasePrePrepareReceived:
		return "pre-prepare-received"
	case PhasePrepareSent:
		return "prepare-sent"
	case PhaseCommitSent:
		return "commit-sent"
	case PhaseCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

type round struct {
	block     model.Block
	phase     Phase
	prepares  map[string]string
	commits   map[string]string
	startedAt time.Time
}

func newRound(b model.Block, phase Phase, startedAt time.Time) *round {
	return &round{
		block:     b,
		phase:     phase,
		prepares:  make(map[string]string),
		commits:   make(map[string]string),
		startedAt: startedAt,
	}
}

// proof lists the commit signatures ordered by validator id.
func (r *round) proof() []model.ValidatorSignature {
	out := make([]model.ValidatorSignature, 0, len(r.commits))
	for id, sig := range r.commits {
		out = append(out, model.ValidatorSignature{ValidatorID: id, Signature: sig})
	}
	slices.SortFunc(out, func(a, b model.ValidatorSignature) int {
		return strings.Compare(a.ValidatorID, b.ValidatorID)
	})
	return out
}
