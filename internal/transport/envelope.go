// Package transport defines the message envelope validators exchange and the
// adapters that carry it.
package transport

import (
	"errors"
	"time"
)

// Kind names the payload carried by an Envelope.
type Kind string

const (
	KindBatch      Kind = "batch"
	KindPrePrepare Kind = "preprepare"
	KindPrepare    Kind = "prepare"
	KindCommit     Kind = "commit"
	KindForward    Kind = "forward"
)

// GroupValidators addresses every validator except the sender.
const GroupValidators = "validators"

// ErrUnknownPeer is returned when sending to an id no endpoint has joined as.
var ErrUnknownPeer = errors.New("unknown peer")

// Envelope is the unit every transport carries. Body holds the codec text.
type Envelope struct {
	ID     string    `json:"id"`
	Kind   Kind      `json:"kind"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// Broadcast reports whether e is addressed to the whole validator group.
func (e Envelope) Broadcast() bool {
	return e.To == "" || e.To == GroupValidators
}

// Handler consumes delivered envelopes.
type Handler func(e Envelope)
