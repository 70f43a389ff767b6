package model

import "time"

// ValidatorSignature is one commit vote attached to a committed block.
type ValidatorSignature struct {
	ValidatorID string
	Signature   string
}

// Block is a unit of the chain agreed on by the validator set.
type Block struct {
	Height       uint64
	Timestamp    time.Time
	PreviousHash string
	Hash         string
	ProposerID   string
	Operations   []Operation
	Proof        []ValidatorSignature
}

// Genesis parameters shared by every validator.
const (
	GenesisPreviousHash = "0"
	GenesisProposer     = "genesis"
)

// GenesisTimestamp is the fixed timestamp of block zero.
var GenesisTimestamp = time.Unix(0, 0).UTC()
