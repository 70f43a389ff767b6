// Package ledger holds the committed chain and the vehicle state derived from it.
package ledger

import (
	"fmt"
	"sort"

	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/pkg/safe"
)

const (
	defaultHistoryWindow = 20
	defaultQueryRadius   = 100.0
)

// Vehicle is the committed view of a registered vehicle.
type Vehicle struct {
	ID         string
	PublicKey  string
	Reputation float64
	History    []uint8
}

// Stats summarizes the store.
type Stats struct {
	Height            uint64
	Vehicles          int
	Decisions         int
	Operations        int
	AverageReputation float64
}

// Store is the append-only chain plus the maps its blocks build.
// It is owned by one validator and not safe for concurrent use.
type Store struct {
	historyWindow int

	chain         []model.Block
	keys          map[string]string
	reputations   map[string]float64
	histories     map[string][]uint8
	decisions     map[string]model.EventDecision
	decisionOrder []string
	operations    int
}

// NewStore returns a store holding only the genesis block.
// A non-positive historyWindow selects the default of 20.
func NewStore(historyWindow int) *Store {
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}
	genesis := Genesis()
	return &Store{
		historyWindow: historyWindow,
		chain:         []model.Block{genesis},
		keys:          make(map[string]string),
		reputations:   make(map[string]float64),
		histories:     make(map[string][]uint8),
		decisions:     make(map[string]model.EventDecision),
	}
}

// Genesis builds the fixed block zero every validator starts from.
func Genesis() model.Block {
	b := model.Block{
		Height:       0,
		Timestamp:    model.GenesisTimestamp,
		PreviousHash: model.GenesisPreviousHash,
		ProposerID:   model.GenesisProposer,
	}
	b.Hash = codec.HashBlock(b)
	return b
}

// Append validates b against the tip and applies its operations.
// Nothing is mutated unless every check passes.
func (s *Store) Append(b model.Block) error {
	tip := s.Tip()
	if b.Height != tip.Height+1 {
		return fmt.Errorf("%w: got %d, tip %d", ErrHeightMismatch, b.Height, tip.Height)
	}
	if b.PreviousHash != tip.Hash {
		return fmt.Errorf("%w: got %s, tip %s", ErrPreviousHashMismatch, b.PreviousHash, tip.Hash)
	}
	if computed := codec.HashBlock(b); computed != b.Hash {
		return fmt.Errorf("%w: claimed %s, computed %s", ErrHashMismatch, b.Hash, computed)
	}
	for i, op := range b.Operations {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("%w: operation %d: %v", ErrInvalidOperation, i, err)
		}
	}

	for _, op := range b.Operations {
		s.apply(op)
	}
	s.chain = append(s.chain, b)
	s.operations += len(b.Operations)
	return nil
}

func (s *Store) apply(op model.Operation) {
	switch p := op.Payload.(type) {
	case model.Registration:
		if _, exists := s.keys[p.VehicleID]; exists {
			return
		}
		s.keys[p.VehicleID] = p.PublicKey
		s.reputations[p.VehicleID] = p.InitialReputation
	case model.ReputationUpdate:
		s.reputations[p.VehicleID] = safe.Unit(p.NewReputation)
		s.appendOutcome(p.VehicleID, p.Correct)
	case model.EventDecision:
		if _, exists := s.decisions[p.EventID]; !exists {
			s.decisionOrder = append(s.decisionOrder, p.EventID)
		}
		s.decisions[p.EventID] = p
	}
}

func (s *Store) appendOutcome(vehicleID string, correct bool) {
	var outcome uint8
	if correct {
		outcome = 1
	}
	h := append(s.histories[vehicleID], outcome)
	if len(h) > s.historyWindow {
		h = h[len(h)-s.historyWindow:]
	}
	s.histories[vehicleID] = h
}

// Tip returns the last committed block.
func (s *Store) Tip() model.Block {
	return s.chain[len(s.chain)-1]
}

// Height returns the tip height.
func (s *Store) Height() uint64 {
	return s.Tip().Height
}

// Block returns the block at height h.
func (s *Store) Block(h uint64) (model.Block, bool) {
	if h >= uint64(len(s.chain)) {
		return model.Block{}, false
	}
	return s.chain[h], true
}

// Blocks returns a copy of the chain.
func (s *Store) Blocks() []model.Block {
	out := make([]model.Block, len(s.chain))
	copy(out, s.chain)
	return out
}

func (s *Store) PublicKey(vehicleID string) (string, bool) {
	k, ok := s.keys[vehicleID]
	return k, ok
}

func (s *Store) Reputation(vehicleID string) (float64, bool) {
	r, ok := s.reputations[vehicleID]
	return r, ok
}

// History returns a copy of the vehicle's outcome history, oldest first.
func (s *Store) History(vehicleID string) []uint8 {
	h := s.histories[vehicleID]
	out := make([]uint8, len(h))
	copy(out, h)
	return out
}

// Vehicle returns the committed state of a registered vehicle.
func (s *Store) Vehicle(vehicleID string) (Vehicle, bool) {
	key, ok := s.keys[vehicleID]
	if !ok {
		return Vehicle{}, false
	}
	return Vehicle{
		ID:         vehicleID,
		PublicKey:  key,
		Reputation: s.reputations[vehicleID],
		History:    s.History(vehicleID),
	}, true
}

// Vehicles returns every registered vehicle sorted by id.
func (s *Store) Vehicles() []Vehicle {
	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Vehicle, 0, len(ids))
	for _, id := range ids {
		v, _ := s.Vehicle(id)
		out = append(out, v)
	}
	return out
}

func (s *Store) Decision(eventID string) (model.EventDecision, bool) {
	d, ok := s.decisions[eventID]
	return d, ok
}

// DecisionsNear returns committed decisions within radius of loc, in commit order.
// A non-positive radius selects the default of 100.
func (s *Store) DecisionsNear(loc model.Location, radius float64) []model.EventDecision {
	if radius <= 0 {
		radius = defaultQueryRadius
	}
	var out []model.EventDecision
	for _, id := range s.decisionOrder {
		d := s.decisions[id]
		if d.Location.DistanceTo(loc) <= radius {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Stats() Stats {
	st := Stats{
		Height:     s.Height(),
		Vehicles:   len(s.keys),
		Decisions:  len(s.decisions),
		Operations: s.operations,
	}
	if len(s.reputations) > 0 {
		var sum float64
		for _, r := range s.reputations {
			sum += r
		}
		st.AverageReputation = sum / float64(len(s.reputations))
	}
	return st
}
