package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

// Phase names the consensus vote phase.
type Phase string

const (
	PhasePrepare Phase = "PREPARE"
	PhaseCommit  Phase = "COMMIT"
)

// PrePrepare carries the proposer's candidate block.
type PrePrepare struct {
	View       uint64
	Sequence   uint64
	ProposerID string
	Token      string
	Block      model.Block
}

// Vote is a prepare or commit vote for a block hash.
type Vote struct {
	Phase     Phase
	BlockHash string
	VoterID   string
	Token     string
}

const (
	prePreparePrefix = "PREPREPARE"
	votePrefix       = "VOTE"
)

// VoteSignBytes is the payload a validator signs for a vote token.
func VoteSignBytes(phase Phase, blockHash string) []byte {
	return []byte(string(phase) + fieldSep + blockHash)
}

// EncodePrePrepare renders m; the embedded block keeps its own encoding.
func EncodePrePrepare(m PrePrepare) string {
	return strings.Join([]string{
		prePreparePrefix,
		strconv.FormatUint(m.View, 10),
		strconv.FormatUint(m.Sequence, 10),
		esc(m.ProposerID),
		esc(m.Token),
		EncodeBlock(m.Block),
	}, recordSep)
}

// DecodePrePrepare parses a pre-prepare message.
func DecodePrePrepare(s string) (PrePrepare, error) {
	parts := strings.SplitN(s, recordSep, 6)
	if len(parts) != 6 || parts[0] != prePreparePrefix {
		return PrePrepare{}, fmt.Errorf("%w: pre-prepare", ErrMalformed)
	}
	view, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return PrePrepare{}, fmt.Errorf("%w: view %q", ErrMalformed, parts[1])
	}
	seq, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return PrePrepare{}, fmt.Errorf("%w: sequence %q", ErrMalformed, parts[2])
	}
	d := &decoder{fields: parts[3:5]}
	m := PrePrepare{
		View:       view,
		Sequence:   seq,
		ProposerID: d.str(),
		Token:      d.str(),
	}
	if d.err != nil {
		return PrePrepare{}, d.err
	}
	if m.Block, err = DecodeBlock(parts[5]); err != nil {
		return PrePrepare{}, fmt.Errorf("pre-prepare block: %w", err)
	}
	return m, nil
}

// EncodeVote renders a vote.
func EncodeVote(v Vote) string {
	return strings.Join([]string{votePrefix, string(v.Phase), esc(v.BlockHash), esc(v.VoterID), esc(v.Token)}, recordSep)
}

// DecodeVote parses a vote.
func DecodeVote(s string) (Vote, error) {
	parts := strings.Split(s, recordSep)
	if len(parts) != 5 || parts[0] != votePrefix {
		return Vote{}, fmt.Errorf("%w: vote", ErrMalformed)
	}
	phase := Phase(parts[1])
	if phase != PhasePrepare && phase != PhaseCommit {
		return Vote{}, fmt.Errorf("%w: vote phase %q", ErrMalformed, parts[1])
	}
	d := &decoder{fields: parts[2:]}
	v := Vote{Phase: phase, BlockHash: d.str(), VoterID: d.str(), Token: d.str()}
	if d.err != nil {
		return Vote{}, d.err
	}
	return v, nil
}
