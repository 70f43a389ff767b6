package api

import (
	"time"

	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/ledger"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/internal/validator"
)

type vehicleView struct {
	ID         string  `json:"id"`
	PublicKey  string  `json:"public_key"`
	Reputation float64 `json:"reputation"`
	History    []int   `json:"history"`
}

type blockView struct {
	Height       uint64    `json:"height"`
	Hash         string    `json:"hash"`
	PreviousHash string    `json:"previous_hash"`
	ProposerID   string    `json:"proposer_id"`
	Timestamp    time.Time `json:"timestamp"`
	Operations   []string  `json:"operations"`
	Signers      []string  `json:"signers"`
}

type voteView struct {
	ReporterID string `json:"reporter_id"`
	Claim      string `json:"claim"`
}

type decisionView struct {
	EventID      string     `json:"event_id"`
	WinningClaim string     `json:"winning_claim"`
	Verdict      string     `json:"verdict"`
	Confidence   float64    `json:"confidence"`
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	OccurredAt   time.Time  `json:"occurred_at"`
	Reports      []voteView `json:"reports"`
}

type statsView struct {
	ValidatorID       string  `json:"validator_id"`
	IsProposer        bool    `json:"is_proposer"`
	Height            uint64  `json:"height"`
	Vehicles          int     `json:"vehicles"`
	Decisions         int     `json:"decisions"`
	Operations        int     `json:"operations"`
	AverageReputation float64 `json:"average_reputation"`
	Pending           int     `json:"pending"`
	OpenClusters      int     `json:"open_clusters"`
	CurrentTPS        float64 `json:"current_tps"`
	OverallTPS        float64 `json:"overall_tps"`
	BatchTarget       int     `json:"batch_target"`
	BatchBuffered     int     `json:"batch_buffered"`
	NetworkLatencyMS  int64   `json:"network_latency_ms"`
}

type registerRequest struct {
	VehicleID string `json:"vehicle_id"`
	PublicKey string `json:"public_key"`
}

type reportRequest struct {
	ReporterID      string    `json:"reporter_id"`
	ClaimedType     string    `json:"claimed_type"`
	GroundTruthType string    `json:"ground_truth_type"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	OccurredAt      time.Time `json:"occurred_at"`
	Sequence        uint32    `json:"sequence"`
	Signature       string    `json:"signature"`
}

func (r reportRequest) report() model.EventReport {
	return model.EventReport{
		ReporterID:      r.ReporterID,
		ClaimedType:     r.ClaimedType,
		GroundTruthType: r.GroundTruthType,
		Location:        model.Location{X: r.X, Y: r.Y},
		OccurredAt:      r.OccurredAt,
		Sequence:        r.Sequence,
		Signature:       r.Signature,
	}
}

type errorView struct {
	Error string `json:"error"`
}

func newVehicleView(v ledger.Vehicle) vehicleView {
	history := make([]int, len(v.History))
	for i, h := range v.History {
		history[i] = int(h)
	}
	return vehicleView{ID: v.ID, PublicKey: v.PublicKey, Reputation: v.Reputation, History: history}
}

func newBlockView(b model.Block) blockView {
	v := blockView{
		Height:       b.Height,
		Hash:         b.Hash,
		PreviousHash: b.PreviousHash,
		ProposerID:   b.ProposerID,
		Timestamp:    b.Timestamp,
		Operations:   make([]string, len(b.Operations)),
		Signers:      make([]string, len(b.Proof)),
	}
	for i, op := range b.Operations {
		v.Operations[i] = codec.EncodeOperation(op)
	}
	for i, s := range b.Proof {
		v.Signers[i] = s.ValidatorID
	}
	return v
}

func newDecisionView(d model.EventDecision) decisionView {
	v := decisionView{
		EventID:      d.EventID,
		WinningClaim: d.WinningClaim,
		Verdict:      string(d.Verdict),
		Confidence:   d.Confidence,
		X:            d.Location.X,
		Y:            d.Location.Y,
		OccurredAt:   d.OccurredAt,
		Reports:      make([]voteView, len(d.Reports)),
	}
	for i, r := range d.Reports {
		v.Reports[i] = voteView{ReporterID: r.ReporterID, Claim: r.Claim}
	}
	return v
}

func newStatsView(s validator.Stats) statsView {
	return statsView{
		ValidatorID:       s.ValidatorID,
		IsProposer:        s.IsProposer,
		Height:            s.Height,
		Vehicles:          s.Vehicles,
		Decisions:         s.Decisions,
		Operations:        s.Operations,
		AverageReputation: s.AverageReputation,
		Pending:           s.Pending,
		OpenClusters:      s.OpenClusters,
		CurrentTPS:        s.CurrentTPS,
		OverallTPS:        s.OverallTPS,
		BatchTarget:       s.Batch.Target,
		BatchBuffered:     s.Batch.Buffered,
		NetworkLatencyMS:  s.Batch.Latency.Milliseconds(),
	}
}
