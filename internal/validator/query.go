package validator

import (
	"github.com/goodnatureofminers/roadledger/internal/ledger"
	"github.com/goodnatureofminers/roadledger/internal/model"
)

// Vehicle returns the committed state of a vehicle.
func (n *Node) Vehicle(id string) (ledger.Vehicle, bool) {
	return n.store.Vehicle(id)
}

// Vehicles lists every registered vehicle.
func (n *Node) Vehicles() []ledger.Vehicle {
	return n.store.Vehicles()
}

// Reputation returns a vehicle's committed reputation.
func (n *Node) Reputation(id string) (float64, bool) {
	return n.store.Reputation(id)
}

// PublicKey returns a vehicle's registered key.
func (n *Node) PublicKey(id string) (string, bool) {
	return n.store.PublicKey(id)
}

// Tip returns the last committed block.
func (n *Node) Tip() model.Block {
	return n.store.Tip()
}

// Block returns the committed block at height h.
func (n *Node) Block(h uint64) (model.Block, bool) {
	return n.store.Block(h)
}

// Chain returns every committed block from genesis.
func (n *Node) Chain() []model.Block {
	return n.store.Blocks()
}

// Decision returns a committed event decision.
func (n *Node) Decision(eventID string) (model.EventDecision, bool) {
	return n.store.Decision(eventID)
}

// DecisionsNear returns committed decisions within radius of loc.
func (n *Node) DecisionsNear(loc model.Location, radius float64) []model.EventDecision {
	return n.store.DecisionsNear(loc, radius)
}

// Stats returns ledger and pipeline statistics.
func (n *Node) Stats() Stats {
	now := n.sched.Now()
	var overall float64
	if elapsed := now.Sub(n.startedAt).Seconds(); elapsed > 0 {
		overall = float64(n.committedOps) / elapsed
	}
	return Stats{
		Stats:        n.store.Stats(),
		ValidatorID:  n.cfg.ID,
		IsProposer:   n.consensus.IsProposer(),
		Pending:      n.consensus.PendingCount(),
		OpenClusters: n.credibility.OpenClusters(),
		CurrentTPS:   n.currentTPS,
		OverallTPS:   overall,
		Batch:        n.batch.State(),
	}
}
