// Package credibility clusters crowd reports about road events, weighs the
// competing claims by reporter trust and emits the resulting ledger operations.
package credibility

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/model"
)

// Reasons reported through Metrics.ObserveDropped.
const (
	DropMalformed         = "malformed"
	DropUnregistered      = "unregistered"
	DropBadSignature      = "bad_signature"
	DropDuplicateReporter = "duplicate_reporter"
	DropClosed            = "closed"
)

// Detection classes reported through Metrics.ObserveDetection.
const (
	TruePositive  = "tp"
	FalsePositive = "fp"
	TrueNegative  = "tn"
	FalseNegative = "fn"
)

// pendingUpdate is a reputation update admitted for consensus but not yet
// seen on chain. It stops counting once expires has passed.
type pendingUpdate struct {
	opID    string
	correct bool
	expires time.Time
}

// Engine decides road events for one validator. All methods must run on the
// scheduler's event queue.
type Engine struct {
	cfg       Config
	sched     clock.Scheduler
	ledger    Ledger
	verifier  Verifier
	submitter Submitter
	metrics   Metrics
	logger    *zap.Logger

	open        []*cluster
	clusterSeq  uint64
	verifying   map[clock.Handle]struct{}
	outstanding map[string][]pendingUpdate
	closed      bool
}

// NewEngine builds an Engine.
func NewEngine(
	cfg Config,
	sched clock.Scheduler,
	ledger Ledger,
	verifier Verifier,
	submitter Submitter,
	metrics Metrics,
	logger *zap.Logger,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("credibility config: %w", err)
	}
	if sched == nil {
		return nil, errors.New("credibility scheduler is required")
	}
	if ledger == nil {
		return nil, errors.New("credibility ledger is required")
	}
	if verifier == nil {
		return nil, errors.New("credibility verifier is required")
	}
	if submitter == nil {
		return nil, errors.New("credibility submitter is required")
	}
	if metrics == nil {
		return nil, errors.New("credibility metrics is required")
	}
	return &Engine{
		cfg:         cfg,
		sched:       sched,
		ledger:      ledger,
		verifier:    verifier,
		submitter:   submitter,
		metrics:     metrics,
		logger:      logger,
		verifying:   make(map[clock.Handle]struct{}),
		outstanding: make(map[string][]pendingUpdate),
	}, nil
}

// Ingest schedules signature verification and clustering of r.
func (e *Engine) Ingest(r model.EventReport) {
	if e.closed {
		e.metrics.ObserveDropped(DropClosed)
		return
	}
	if r.ReporterID == "" || r.ClaimedType == "" || !finite(r.Location) {
		e.metrics.ObserveDropped(DropMalformed)
		e.logger.Warn("malformed report dropped", zap.String("reporter", r.ReporterID), zap.String("claim", r.ClaimedType))
		return
	}
	var h clock.Handle
	h = e.sched.ScheduleAfter(e.cfg.VerifyDelay, func() {
		delete(e.verifying, h)
		e.process(r)
	})
	e.verifying[h] = struct{}{}
}

// OpenClusters returns the number of undecided clusters.
func (e *Engine) OpenClusters() int {
	return len(e.open)
}

// Committed retires outstanding updates once they are on chain. A committed
// update carries an absolute reputation, so every update queued before it for
// the same vehicle is retired with it.
func (e *Engine) Committed(b model.Block) {
	for _, op := range b.Operations {
		u, ok := op.Payload.(model.ReputationUpdate)
		if !ok {
			continue
		}
		pending := e.outstanding[u.VehicleID]
		id := op.ID()
		i := slices.IndexFunc(pending, func(p pendingUpdate) bool { return p.opID == id })
		if i < 0 {
			continue
		}
		if pending = pending[i+1:]; len(pending) == 0 {
			delete(e.outstanding, u.VehicleID)
		} else {
			e.outstanding[u.VehicleID] = pending
		}
	}
}

// Close cancels pending verifications and decisions.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for h := range e.verifying {
		e.sched.Cancel(h)
	}
	clear(e.verifying)
	for _, c := range e.open {
		e.sched.Cancel(c.timer)
	}
	e.open = nil
}

func (e *Engine) process(r model.EventReport) {
	key, ok := e.ledger.PublicKey(r.ReporterID)
	if !ok {
		e.metrics.ObserveDropped(DropUnregistered)
		e.logger.Debug("report from unregistered vehicle dropped", zap.String("reporter", r.ReporterID))
		return
	}
	if !e.verifier.Verify(r.ReporterID, key, r.SignBytes(), r.Signature) {
		e.metrics.ObserveDropped(DropBadSignature)
		e.logger.Debug("report signature rejected", zap.String("reporter", r.ReporterID))
		return
	}

	for _, c := range e.open {
		if !c.matches(r, e.cfg.DistanceThreshold, e.cfg.TimeThreshold) {
			continue
		}
		if _, dup := c.reporters[r.ReporterID]; dup {
			e.metrics.ObserveDropped(DropDuplicateReporter)
			e.logger.Debug("second report for cluster ignored", zap.String("reporter", r.ReporterID), zap.String("event", c.id))
			return
		}
		c.reporters[r.ReporterID] = struct{}{}
		c.reports = append(c.reports, r)
		return
	}

	e.clusterSeq++
	c := newCluster(r, e.clusterSeq)
	c.timer = e.sched.ScheduleAfter(e.cfg.DecisionDelay, func() { e.decide(c) })
	e.open = append(e.open, c)
	e.logger.Debug("cluster opened", zap.String("event", c.id), zap.String("claim", c.claim))
}

func (e *Engine) decide(c *cluster) {
	e.open = slices.DeleteFunc(e.open, func(o *cluster) bool { return o == c })
	e.expire()

	ballots := make([]ballot, len(c.reports))
	for i, r := range c.reports {
		rep := e.reputation(r.ReporterID)
		susp := Suspicion(e.history(r.ReporterID), e.cfg.HistoryWindow, e.cfg.Gamma, e.cfg.ReliabilityWeight, e.cfg.VolatilityWeight)
		ballots[i] = ballot{claim: r.ClaimedType, trust: rep * (1 - susp)}
	}
	res := weigh(ballots, e.cfg.ConfidenceThreshold)

	now := e.sched.Now()
	e.submit(model.NewOperation(now, model.EventDecision{
		EventID:      c.id,
		WinningClaim: res.winner,
		Verdict:      res.verdict,
		Confidence:   res.confidence,
		Location:     c.location,
		OccurredAt:   c.occurredAt,
		Reports:      c.votes(),
	}))
	e.metrics.ObserveDecision(string(res.verdict), len(c.reports))
	e.logger.Info("event decided",
		zap.String("event", c.id),
		zap.String("winner", res.winner),
		zap.Float64("confidence", res.confidence),
		zap.String("verdict", string(res.verdict)),
		zap.Int("reports", len(c.reports)),
	)

	validated := res.verdict == model.VerdictValidated
	for _, r := range c.reports {
		correct := r.ClaimedType == res.winner
		e.classify(r, validated && correct)
		if !validated {
			continue
		}
		old := e.reputation(r.ReporterID)
		next := nextReputation(old, correct, e.cfg.Alpha, e.cfg.Beta)
		op := model.NewOperation(now, model.ReputationUpdate{
			VehicleID:     r.ReporterID,
			EventID:       c.id,
			OldReputation: old,
			NewReputation: next,
			Correct:       correct,
		})
		if !e.submit(op) {
			continue
		}
		e.outstanding[r.ReporterID] = append(e.outstanding[r.ReporterID], pendingUpdate{
			opID:    op.ID(),
			correct: correct,
			expires: now.Add(e.cfg.PendingTTL),
		})
		e.metrics.ObserveReputationDelta(next-old, correct)
	}
}

func (e *Engine) classify(r model.EventReport, accepted bool) {
	if r.GroundTruthType == "" {
		return
	}
	malicious := r.ClaimedType != r.GroundTruthType
	switch {
	case malicious && !accepted:
		e.metrics.ObserveDetection(TruePositive)
	case malicious && accepted:
		e.metrics.ObserveDetection(FalseNegative)
	case accepted:
		e.metrics.ObserveDetection(TrueNegative)
	default:
		e.metrics.ObserveDetection(FalsePositive)
	}
}

func (e *Engine) submit(op model.Operation) bool {
	if err := e.submitter.Submit(op); err != nil {
		e.logger.Warn("operation not admitted", zap.String("op", op.ID()), zap.Error(err))
		return false
	}
	return true
}

// expire forgets updates that never reached the chain in time, such as
// forwards lost on the way to the proposer.
func (e *Engine) expire() {
	now := e.sched.Now()
	for id, pending := range e.outstanding {
		pending = slices.DeleteFunc(pending, func(p pendingUpdate) bool { return !now.Before(p.expires) })
		if len(pending) == 0 {
			delete(e.outstanding, id)
			continue
		}
		e.outstanding[id] = pending
	}
}

// reputation is the committed reputation with outstanding updates applied.
func (e *Engine) reputation(vehicleID string) float64 {
	rep, ok := e.ledger.Reputation(vehicleID)
	if !ok {
		rep = model.DefaultReputation
	}
	for _, p := range e.outstanding[vehicleID] {
		rep = nextReputation(rep, p.correct, e.cfg.Alpha, e.cfg.Beta)
	}
	return rep
}

func (e *Engine) history(vehicleID string) []uint8 {
	committed := e.ledger.History(vehicleID)
	pending := e.outstanding[vehicleID]
	if len(pending) == 0 {
		return committed
	}
	h := slices.Clone(committed)
	for _, p := range pending {
		var outcome uint8
		if p.correct {
			outcome = 1
		}
		h = append(h, outcome)
	}
	if len(h) > e.cfg.HistoryWindow {
		h = h[len(h)-e.cfg.HistoryWindow:]
	}
	return h
}

func finite(l model.Location) bool {
	return !math.IsNaN(l.X) && !math.IsNaN(l.Y) && !math.IsInf(l.X, 0) && !math.IsInf(l.Y, 0)
}
