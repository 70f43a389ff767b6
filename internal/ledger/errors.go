package ledger

import "errors"

var (
	// ErrHeightMismatch is returned when a block does not extend the tip by one.
	ErrHeightMismatch = errors.New("block height does not extend tip")
	// ErrPreviousHashMismatch is returned when a block does not reference the tip hash.
	ErrPreviousHashMismatch = errors.New("block previous hash does not match tip")
	// ErrHashMismatch is returned when the recomputed block hash differs from the claimed one.
	ErrHashMismatch = errors.New("block hash mismatch")
	// ErrInvalidOperation is returned when a block carries an operation that cannot be applied.
	ErrInvalidOperation = errors.New("invalid block operation")
)
