// Package validator wires the ledger, consensus, batch admission and
// credibility components of one road-side validator behind a transport.
package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/batch"
	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/consensus"
	"github.com/goodnatureofminers/roadledger/internal/credibility"
	"github.com/goodnatureofminers/roadledger/internal/ledger"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/internal/transport"
)

// Envelope results reported through Metrics.ObserveEnvelope.
const (
	ResultOK         = "ok"
	ResultDuplicate  = "duplicate"
	ResultMalformed  = "malformed"
	ResultIgnored    = "ignored"
	ResultSendFailed = "send_failed"
)

const (
	baseLatency       = 0.5
	congestedPool     = 20
	perPendingLatency = 0.05
	targetTPS         = 10.0
	lowTPSPenalty     = 0.1
)

// Stats summarizes a validator for operators.
type Stats struct {
	ledger.Stats
	ValidatorID  string
	IsProposer   bool
	Pending      int
	OpenClusters int
	CurrentTPS   float64
	OverallTPS   float64
	Batch        batch.State
}

// Node is one validator. Every method must run on the scheduler's event
// queue; adapters reach it through clock.Loop.
type Node struct {
	cfg     Config
	sched   clock.Scheduler
	net     Transport
	metrics Metrics
	logger  *zap.Logger

	store       *ledger.Store
	consensus   *consensus.Engine
	batch       *batch.Controller
	credibility *credibility.Engine
	seen        *lru.Cache[string, struct{}]
	listeners   []func(model.Block)

	startedAt    time.Time
	committedOps int
	windowStart  time.Time
	windowOps    int
	currentTPS   float64
	adaptive     clock.Handle
	closed       bool
}

// NewNode builds a validator and its components.
func NewNode(cfg Config, sched clock.Scheduler, attestor Attestor, net Transport, inst Instruments, logger *zap.Logger) (*Node, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validator config: %w", err)
	}
	if sched == nil {
		return nil, errors.New("validator scheduler is required")
	}
	if attestor == nil {
		return nil, errors.New("validator attestor is required")
	}
	if net == nil {
		return nil, errors.New("validator transport is required")
	}
	if inst.Node == nil {
		return nil, errors.New("validator metrics is required")
	}

	seen, err := lru.New[string, struct{}](cfg.SeenEnvelopes)
	if err != nil {
		return nil, fmt.Errorf("seen envelope cache: %w", err)
	}

	logger = logger.With(zap.String("validator", cfg.ID))
	now := sched.Now()
	n := &Node{
		cfg:         cfg,
		sched:       sched,
		net:         net,
		metrics:     inst.Node,
		logger:      logger,
		store:       ledger.NewStore(cfg.HistoryWindow),
		seen:        seen,
		startedAt:   now,
		windowStart: now,
	}

	consensusCfg := consensus.Config{SelfID: cfg.ID, ProposerID: cfg.ProposerID, Members: cfg.Validators}
	if n.consensus, err = consensus.NewEngine(consensusCfg, sched, n.store, attestor, n, inst.Consensus, logger.Named("consensus")); err != nil {
		return nil, err
	}
	if n.batch, err = batch.NewController(cfg.Batch, sched, n, inst.Batch, logger.Named("batch")); err != nil {
		return nil, err
	}
	if n.credibility, err = credibility.NewEngine(cfg.Credibility, sched, n.store, attestor, n, inst.Credibility, logger.Named("credibility")); err != nil {
		return nil, err
	}
	n.consensus.Subscribe(n.onCommit)

	if n.consensus.IsProposer() && cfg.AdaptiveInterval > 0 {
		n.scheduleAdaptive()
	}
	logger.Info("validator ready",
		zap.String("proposer", cfg.ProposerID),
		zap.Int("validators", len(cfg.Validators)),
		zap.Int("quorum", n.consensus.Quorum()),
	)
	return n, nil
}

// ID returns the validator id.
func (n *Node) ID() string { return n.cfg.ID }

// IsProposer reports whether this validator proposes blocks.
func (n *Node) IsProposer() bool { return n.consensus.IsProposer() }

// OnCommit registers fn to receive every committed block.
func (n *Node) OnCommit(fn func(model.Block)) {
	n.listeners = append(n.listeners, fn)
}

// Register submits a Registration with the default initial reputation.
func (n *Node) Register(vehicleID, publicKey string) error {
	return n.Submit(model.NewOperation(n.sched.Now(), model.Registration{
		VehicleID:         vehicleID,
		PublicKey:         publicKey,
		InitialReputation: model.DefaultReputation,
	}))
}

// SubmitReport hands a road event report to the credibility engine.
func (n *Node) SubmitReport(r model.EventReport) {
	if r.ArrivedAt.IsZero() {
		r.ArrivedAt = n.sched.Now()
	}
	n.credibility.Ingest(r)
}

// Submit admits op locally on the proposer and forwards it otherwise.
func (n *Node) Submit(op model.Operation) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if n.consensus.IsProposer() {
		return n.batch.Submit(op)
	}
	n.send(transport.KindForward, n.consensus.ProposerID(), codec.EncodeOperation(op))
	return nil
}

// Deliver handles an envelope from the transport.
func (n *Node) Deliver(e transport.Envelope) {
	if dup, _ := n.seen.ContainsOrAdd(e.ID, struct{}{}); dup {
		n.metrics.ObserveEnvelope(string(e.Kind), ResultDuplicate)
		return
	}
	n.metrics.ObserveEnvelope(string(e.Kind), n.dispatch(e))
}

func (n *Node) dispatch(e transport.Envelope) string {
	switch e.Kind {
	case transport.KindBatch:
		return n.onBatch(e)
	case transport.KindPrePrepare:
		m, err := codec.DecodePrePrepare(e.Body)
		if err != nil {
			return n.malformed(e, err)
		}
		n.consensus.OnPrePrepare(e.From, m)
	case transport.KindPrepare, transport.KindCommit:
		v, err := codec.DecodeVote(e.Body)
		if err != nil {
			return n.malformed(e, err)
		}
		if v.Phase == codec.PhasePrepare {
			n.consensus.OnPrepare(v)
		} else {
			n.consensus.OnCommit(v)
		}
	case transport.KindForward:
		if !n.consensus.IsProposer() {
			return ResultIgnored
		}
		if !n.consensus.IsMember(e.From) {
			n.logger.Debug("forward from non-validator dropped", zap.String("from", e.From))
			return ResultIgnored
		}
		op, err := codec.DecodeOperation(e.Body)
		if err != nil {
			return n.malformed(e, err)
		}
		if err := n.batch.Submit(op); err != nil {
			n.logger.Warn("forwarded operation not admitted", zap.String("from", e.From), zap.Error(err))
			return ResultIgnored
		}
	default:
		n.logger.Warn("unknown envelope kind", zap.String("kind", string(e.Kind)), zap.String("from", e.From))
		return ResultMalformed
	}
	return ResultOK
}

func (n *Node) onBatch(e transport.Envelope) string {
	if e.From != n.consensus.ProposerID() || n.consensus.IsProposer() {
		n.logger.Debug("batch from non-proposer ignored", zap.String("from", e.From))
		return ResultIgnored
	}
	b, skipped, err := codec.DecodeBatch(e.Body)
	if err != nil {
		return n.malformed(e, err)
	}
	for _, s := range skipped {
		n.logger.Warn("malformed batch record dropped", zap.String("from", e.From), zap.Error(s))
	}
	n.batch.UpdateNetworkParameters(b.ReporterCount, seconds(b.Latency))
	n.consensus.AddPending(b.Operations)
	return ResultOK
}

func (n *Node) malformed(e transport.Envelope, err error) string {
	n.logger.Warn("malformed envelope dropped", zap.String("kind", string(e.Kind)), zap.String("from", e.From), zap.Error(err))
	return ResultMalformed
}

// BroadcastBatch implements batch.Proposer.
func (n *Node) BroadcastBatch(b codec.Batch) {
	n.send(transport.KindBatch, transport.GroupValidators, codec.EncodeBatch(b))
}

// EnqueueForProposal implements batch.Proposer.
func (n *Node) EnqueueForProposal(ops []model.Operation) {
	n.consensus.AddPending(ops)
}

// RequestProposal implements batch.Proposer.
func (n *Node) RequestProposal() {
	err := n.consensus.Propose()
	switch {
	case err == nil:
	case errors.Is(err, consensus.ErrRoundInFlight):
		n.logger.Debug("proposal deferred", zap.Error(err))
	default:
		n.logger.Warn("proposal failed", zap.Error(err))
	}
}

// BroadcastPrePrepare implements consensus.Broadcaster.
func (n *Node) BroadcastPrePrepare(m codec.PrePrepare) {
	n.send(transport.KindPrePrepare, transport.GroupValidators, codec.EncodePrePrepare(m))
}

// BroadcastVote implements consensus.Broadcaster.
func (n *Node) BroadcastVote(v codec.Vote) {
	kind := transport.KindPrepare
	if v.Phase == codec.PhaseCommit {
		kind = transport.KindCommit
	}
	n.send(kind, transport.GroupValidators, codec.EncodeVote(v))
}

func (n *Node) send(kind transport.Kind, to, body string) {
	e := transport.Envelope{
		ID:     uuid.NewString(),
		Kind:   kind,
		From:   n.cfg.ID,
		To:     to,
		Body:   body,
		SentAt: n.sched.Now(),
	}
	n.seen.Add(e.ID, struct{}{})
	if err := n.net.Send(e); err != nil {
		n.metrics.ObserveEnvelope(string(kind), ResultSendFailed)
		n.logger.Warn("envelope not sent", zap.String("kind", string(kind)), zap.String("to", to), zap.Error(err))
	}
}

func (n *Node) onCommit(b model.Block) {
	n.credibility.Committed(b)
	n.metrics.ObserveHeight(b.Height)
	n.committedOps += len(b.Operations)
	n.windowOps += len(b.Operations)
	n.rollTPS(n.sched.Now())
	for _, fn := range n.listeners {
		fn(b)
	}
}

func (n *Node) rollTPS(now time.Time) {
	elapsed := now.Sub(n.windowStart)
	if elapsed < n.cfg.TPSWindow {
		return
	}
	n.currentTPS = float64(n.windowOps) / elapsed.Seconds()
	n.windowOps = 0
	n.windowStart = now
}

// UpdateAdaptiveNetworkParameters estimates latency from the pending pool
// and recent throughput and feeds it to the batch controller.
func (n *Node) UpdateAdaptiveNetworkParameters() {
	if !n.consensus.IsProposer() {
		return
	}
	n.rollTPS(n.sched.Now())

	latency := baseLatency
	if pending := n.consensus.PendingCount(); pending > congestedPool {
		latency += float64(pending-congestedPool) * perPendingLatency
	}
	if n.currentTPS > 0 && n.currentTPS < targetTPS {
		latency += (targetTPS - n.currentTPS) * lowTPSPenalty
	}
	vehicles := n.store.Stats().Vehicles
	n.batch.UpdateNetworkParameters(vehicles, seconds(latency))
	n.logger.Debug("network parameters updated",
		zap.Int("vehicles", vehicles),
		zap.Float64("latency", latency),
		zap.Float64("tps", n.currentTPS),
	)
}

func (n *Node) scheduleAdaptive() {
	n.adaptive = n.sched.ScheduleAfter(n.cfg.AdaptiveInterval, func() {
		n.adaptive = 0
		n.UpdateAdaptiveNetworkParameters()
		n.scheduleAdaptive()
	})
}

// Flush forces the batch controller to hand its buffer to consensus.
func (n *Node) Flush() {
	n.batch.Flush()
}

// Close stops timers owned by the validator's components.
func (n *Node) Close() {
	if n.closed {
		return
	}
	n.closed = true
	if n.adaptive != 0 {
		n.sched.Cancel(n.adaptive)
		n.adaptive = 0
	}
	n.batch.Close()
	n.credibility.Close()
	n.logger.Info("validator stopped", zap.Uint64("height", n.store.Height()))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
