// Package consensus runs the three-phase agreement that turns pending
// operations into committed blocks under a fixed proposer.
package consensus

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/model"
)

var (
	// ErrNotProposer is returned when a non-proposer tries to propose.
	ErrNotProposer = errors.New("validator is not the proposer")
	// ErrRoundInFlight is returned when a round for the next height is already open.
	ErrRoundInFlight = errors.New("round already in flight")
)

// Reasons reported through Metrics.ObserveRejected.
const (
	RejectNotProposer  = "not_proposer"
	RejectDuplicate    = "duplicate_round"
	RejectHashMismatch = "hash_mismatch"
	RejectStale        = "stale_block"
	RejectBadToken     = "bad_token"
	RejectUnknownRound = "unknown_round"
	RejectNotMember    = "not_member"
	RejectAppend       = "append_failed"
)

// Engine is one validator's view of consensus. All methods must run on the
// scheduler's event queue.
type Engine struct {
	cfg         Config
	keys        map[string]string
	quorum      int
	sched       clock.Scheduler
	ledger      Ledger
	attestor    Attestor
	broadcaster Broadcaster
	metrics     Metrics
	logger      *zap.Logger

	pending    []model.Operation
	pendingIDs map[string]struct{}
	rounds     map[string]*round
	heights    map[uint64]string
	sequence   uint64
	listeners  []CommitListener
}

// NewEngine builds an Engine for cfg.SelfID.
func NewEngine(
	cfg Config,
	sched clock.Scheduler,
	ledger Ledger,
	attestor Attestor,
	broadcaster Broadcaster,
	metrics Metrics,
	logger *zap.Logger,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consensus config: %w", err)
	}
	if sched == nil {
		return nil, errors.New("consensus scheduler is required")
	}
	if ledger == nil {
		return nil, errors.New("consensus ledger is required")
	}
	if attestor == nil {
		return nil, errors.New("consensus attestor is required")
	}
	if broadcaster == nil {
		return nil, errors.New("consensus broadcaster is required")
	}
	if metrics == nil {
		return nil, errors.New("consensus metrics is required")
	}

	keys := make(map[string]string, len(cfg.Members))
	for _, m := range cfg.Members {
		keys[m.ID] = m.PublicKey
	}
	return &Engine{
		cfg:         cfg,
		keys:        keys,
		quorum:      Quorum(len(cfg.Members)),
		sched:       sched,
		ledger:      ledger,
		attestor:    attestor,
		broadcaster: broadcaster,
		metrics:     metrics,
		logger:      logger.With(zap.String("validator", cfg.SelfID)),
		pendingIDs:  make(map[string]struct{}),
		rounds:      make(map[string]*round),
		heights:     make(map[uint64]string),
	}, nil
}

// IsProposer reports whether this validator proposes blocks.
func (e *Engine) IsProposer() bool {
	return e.cfg.SelfID == e.cfg.ProposerID
}

// ProposerID returns the fixed proposer.
func (e *Engine) ProposerID() string {
	return e.cfg.ProposerID
}

// IsMember reports whether id is one of the configured validators.
func (e *Engine) IsMember(id string) bool {
	_, ok := e.keys[id]
	return ok
}

// Quorum returns the number of matching votes a phase needs.
func (e *Engine) Quorum() int {
	return e.quorum
}

// Pending returns a copy of the pending operation set in arrival order.
func (e *Engine) Pending() []model.Operation {
	return slices.Clone(e.pending)
}

// PendingCount returns the size of the pending operation set.
func (e *Engine) PendingCount() int {
	return len(e.pending)
}

// RoundPhase returns the phase of the open round for blockHash.
func (e *Engine) RoundPhase(blockHash string) Phase {
	if r, ok := e.rounds[blockHash]; ok {
		return r.phase
	}
	return PhaseIdle
}

// Subscribe registers fn to run after every commit.
func (e *Engine) Subscribe(fn CommitListener) {
	e.listeners = append(e.listeners, fn)
}

// AddPending merges ops into the pending set, ignoring ids already present.
func (e *Engine) AddPending(ops []model.Operation) {
	for _, op := range ops {
		id := op.ID()
		if _, dup := e.pendingIDs[id]; dup {
			continue
		}
		e.pendingIDs[id] = struct{}{}
		e.pending = append(e.pending, op)
	}
}

// Propose opens a round for the next height over the pending set.
func (e *Engine) Propose() error {
	if !e.IsProposer() {
		return ErrNotProposer
	}
	tip := e.ledger.Tip()
	if hash, ok := e.heights[tip.Height+1]; ok {
		return fmt.Errorf("%w: height %d block %s", ErrRoundInFlight, tip.Height+1, hash)
	}
	if len(e.pending) == 0 {
		return nil
	}

	b := model.Block{
		Height:       tip.Height + 1,
		Timestamp:    e.sched.Now(),
		PreviousHash: tip.Hash,
		ProposerID:   e.cfg.SelfID,
		Operations:   slices.Clone(e.pending),
	}
	b.Hash = codec.HashBlock(b)

	token, err := e.attestor.Sign(e.cfg.SelfID, codec.VoteSignBytes(codec.PhasePrepare, b.Hash))
	if err != nil {
		return fmt.Errorf("sign pre-prepare: %w", err)
	}

	r := newRound(b, PhasePrePrepareSent, e.sched.Now())
	r.prepares[e.cfg.SelfID] = token
	e.openRound(r)
	e.sequence++

	e.logger.Info("proposing block",
		zap.Uint64("height", b.Height),
		zap.String("hash", b.Hash),
		zap.Int("operations", len(b.Operations)),
	)
	e.broadcaster.BroadcastPrePrepare(codec.PrePrepare{
		View:       e.cfg.View,
		Sequence:   e.sequence,
		ProposerID: e.cfg.SelfID,
		Token:      token,
		Block:      b,
	})
	e.advance(r)
	return nil
}

// OnPrePrepare validates the proposer's block and answers with a prepare vote.
func (e *Engine) OnPrePrepare(from string, m codec.PrePrepare) {
	b := m.Block
	if from != e.cfg.ProposerID || m.ProposerID != e.cfg.ProposerID || b.ProposerID != e.cfg.ProposerID {
		e.reject(RejectNotProposer, zap.String("from", from))
		return
	}
	if from == e.cfg.SelfID {
		return
	}
	if _, ok := e.rounds[b.Hash]; ok {
		e.reject(RejectDuplicate, zap.String("hash", b.Hash))
		return
	}
	if hash, ok := e.heights[b.Height]; ok {
		e.reject(RejectDuplicate, zap.Uint64("height", b.Height), zap.String("open", hash))
		return
	}
	if computed := codec.HashBlock(b); computed != b.Hash {
		e.metrics.ObserveRejected(RejectHashMismatch)
		e.logger.Error("pre-prepare hash mismatch", zap.String("claimed", b.Hash), zap.String("computed", computed))
		return
	}
	tip := e.ledger.Tip()
	if b.PreviousHash != tip.Hash || b.Height != tip.Height+1 {
		e.metrics.ObserveRejected(RejectStale)
		e.logger.Error("pre-prepare does not extend tip",
			zap.Uint64("height", b.Height),
			zap.Uint64("tip", tip.Height),
			zap.String("previous", b.PreviousHash),
		)
		return
	}
	if !e.verify(from, codec.PhasePrepare, b.Hash, m.Token) {
		e.reject(RejectBadToken, zap.String("from", from))
		return
	}

	r := newRound(b, PhasePrePrepareReceived, e.sched.Now())
	r.prepares[from] = m.Token
	e.openRound(r)

	token, err := e.attestor.Sign(e.cfg.SelfID, codec.VoteSignBytes(codec.PhasePrepare, b.Hash))
	if err != nil {
		e.logger.Error("sign prepare", zap.Error(err))
		return
	}
	r.prepares[e.cfg.SelfID] = token
	r.phase = PhasePrepareSent
	e.broadcaster.BroadcastVote(codec.Vote{Phase: codec.PhasePrepare, BlockHash: b.Hash, VoterID: e.cfg.SelfID, Token: token})
	e.advance(r)
}

// OnPrepare counts a prepare vote.
func (e *Engine) OnPrepare(v codec.Vote) {
	r, ok := e.accept(codec.PhasePrepare, v)
	if !ok {
		return
	}
	if _, dup := r.prepares[v.VoterID]; dup {
		return
	}
	r.prepares[v.VoterID] = v.Token
	e.advance(r)
}

// OnCommit counts a commit vote.
func (e *Engine) OnCommit(v codec.Vote) {
	r, ok := e.accept(codec.PhaseCommit, v)
	if !ok {
		return
	}
	if _, dup := r.commits[v.VoterID]; dup {
		return
	}
	r.commits[v.VoterID] = v.Token
	e.advance(r)
}

func (e *Engine) accept(phase codec.Phase, v codec.Vote) (*round, bool) {
	r, ok := e.rounds[v.BlockHash]
	if !ok {
		e.reject(RejectUnknownRound, zap.String("hash", v.BlockHash), zap.String("voter", v.VoterID))
		return nil, false
	}
	if r.phase == PhaseCommitted {
		return nil, false
	}
	if _, member := e.keys[v.VoterID]; !member {
		e.reject(RejectNotMember, zap.String("voter", v.VoterID))
		return nil, false
	}
	if v.Phase != phase || !e.verify(v.VoterID, phase, v.BlockHash, v.Token) {
		e.reject(RejectBadToken, zap.String("voter", v.VoterID), zap.String("phase", string(v.Phase)))
		return nil, false
	}
	return r, true
}

func (e *Engine) advance(r *round) {
	if r.phase < PhaseCommitSent && len(r.prepares) >= e.quorum {
		token, err := e.attestor.Sign(e.cfg.SelfID, codec.VoteSignBytes(codec.PhaseCommit, r.block.Hash))
		if err != nil {
			e.logger.Error("sign commit", zap.Error(err))
			return
		}
		r.commits[e.cfg.SelfID] = token
		r.phase = PhaseCommitSent
		e.broadcaster.BroadcastVote(codec.Vote{Phase: codec.PhaseCommit, BlockHash: r.block.Hash, VoterID: e.cfg.SelfID, Token: token})
	}
	if r.phase == PhaseCommitSent && len(r.commits) >= e.quorum {
		e.commit(r)
	}
}

func (e *Engine) commit(r *round) {
	r.phase = PhaseCommitted
	defer e.closeRound(r)

	b := r.block
	b.Proof = r.proof()
	if err := e.ledger.Append(b); err != nil {
		e.metrics.ObserveRejected(RejectAppend)
		e.logger.Error("committed block rejected by ledger", zap.Uint64("height", b.Height), zap.Error(err))
		return
	}
	e.removePending(b.Operations)
	e.metrics.ObserveRoundCommitted(e.sched.Now().Sub(r.startedAt), len(b.Operations))
	e.logger.Info("block committed",
		zap.Uint64("height", b.Height),
		zap.String("hash", b.Hash),
		zap.Int("operations", len(b.Operations)),
		zap.Int("signatures", len(b.Proof)),
	)
	for _, fn := range e.listeners {
		fn(b)
	}

	if e.IsProposer() && len(e.pending) > 0 {
		e.sched.ScheduleAfter(0, func() {
			if err := e.Propose(); err != nil && !errors.Is(err, ErrRoundInFlight) {
				e.logger.Warn("follow-up proposal failed", zap.Error(err))
			}
		})
	}
}

func (e *Engine) removePending(committed []model.Operation) {
	done := make(map[string]struct{}, len(committed))
	for _, op := range committed {
		done[codec.EncodeOperation(op)] = struct{}{}
	}
	kept := e.pending[:0]
	for _, op := range e.pending {
		if _, ok := done[codec.EncodeOperation(op)]; ok {
			delete(e.pendingIDs, op.ID())
			continue
		}
		kept = append(kept, op)
	}
	clear(e.pending[len(kept):])
	e.pending = kept
}

func (e *Engine) openRound(r *round) {
	e.rounds[r.block.Hash] = r
	e.heights[r.block.Height] = r.block.Hash
}

func (e *Engine) closeRound(r *round) {
	delete(e.rounds, r.block.Hash)
	if e.heights[r.block.Height] == r.block.Hash {
		delete(e.heights, r.block.Height)
	}
}

func (e *Engine) verify(voter string, phase codec.Phase, blockHash, token string) bool {
	key, ok := e.keys[voter]
	if !ok {
		return false
	}
	return e.attestor.Verify(voter, key, codec.VoteSignBytes(phase, blockHash), token)
}

func (e *Engine) reject(reason string, fields ...zap.Field) {
	e.metrics.ObserveRejected(reason)
	e.logger.Debug("consensus message dropped", append(fields, zap.String("reason", reason))...)
}
