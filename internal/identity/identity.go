// Package identity signs and verifies payloads on behalf of vehicles and validators.
package identity

import "errors"

// ErrUnknownIdentity is returned when signing for an id with no private key.
var ErrUnknownIdentity = errors.New("unknown identity")

// Attestor is the two-function signing contract used across the validator.
type Attestor interface {
	Sign(id string, data []byte) (string, error)
	Verify(id, publicKey string, data []byte, signature string) bool
}
