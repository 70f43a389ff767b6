// Package model defines the ledger domain types shared by validator components.
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// OperationKind tags the payload carried by an Operation.
type OperationKind string

const (
	// KindRegistration installs a vehicle identity.
	KindRegistration OperationKind = "REG"
	// KindEventDecision records a decided road event.
	KindEventDecision OperationKind = "EVT"
	// KindReputationUpdate overwrites a reporter reputation.
	KindReputationUpdate OperationKind = "REP"
)

// Verdict is the decided outcome of an event cluster.
type Verdict string

const (
	// VerdictValidated means the winning claim cleared the confidence threshold.
	VerdictValidated Verdict = "VALIDATED"
	// VerdictUncertain means no claim cleared the threshold.
	VerdictUncertain Verdict = "UNCERTAIN"
)

// Valid reports whether v is a known verdict.
func (v Verdict) Valid() bool {
	return v == VerdictValidated || v == VerdictUncertain
}

// DefaultReputation is assigned to newly registered vehicles.
const DefaultReputation = 0.5

// ErrInvalidOperation marks an operation with a missing or out-of-range field.
var ErrInvalidOperation = errors.New("invalid operation")

// Payload is implemented by the three operation shapes only.
type Payload interface {
	Kind() OperationKind
	key() string
	validate() error
}

// Registration installs a public key and initial reputation for a vehicle.
type Registration struct {
	VehicleID         string
	PublicKey         string
	InitialReputation float64
}

// ReportVote is one reporter's claim inside a decided event.
type ReportVote struct {
	ReporterID string
	Claim      string
}

// EventDecision records the verdict of an event cluster.
type EventDecision struct {
	EventID      string
	WinningClaim string
	Verdict      Verdict
	Confidence   float64
	Location     Location
	OccurredAt   time.Time
	Reports      []ReportVote
}

// ReputationUpdate overwrites a vehicle reputation after a validated event.
type ReputationUpdate struct {
	VehicleID     string
	EventID       string
	OldReputation float64
	NewReputation float64
	Correct       bool
}

// Operation is a timestamped ledger mutation.
type Operation struct {
	Timestamp time.Time
	Payload   Payload
}

// NewOperation stamps a payload with its creation time.
func NewOperation(ts time.Time, p Payload) Operation {
	return Operation{Timestamp: ts, Payload: p}
}

// Kind returns the payload kind, or "" for an empty operation.
func (o Operation) Kind() OperationKind {
	if o.Payload == nil {
		return ""
	}
	return o.Payload.Kind()
}

// ID is the dedupe identity: kind, creation time and kind-specific id.
func (o Operation) ID() string {
	if o.Payload == nil {
		return ""
	}
	return string(o.Payload.Kind()) + "_" + strconv.FormatInt(o.Timestamp.UnixNano(), 10) + "_" + o.Payload.key()
}

// Validate checks the payload invariants.
func (o Operation) Validate() error {
	if o.Payload == nil {
		return fmt.Errorf("%w: empty payload", ErrInvalidOperation)
	}
	return o.Payload.validate()
}

func (Registration) Kind() OperationKind     { return KindRegistration }
func (EventDecision) Kind() OperationKind    { return KindEventDecision }
func (ReputationUpdate) Kind() OperationKind { return KindReputationUpdate }

func (r Registration) key() string     { return r.VehicleID }
func (e EventDecision) key() string    { return e.EventID }
func (r ReputationUpdate) key() string { return r.VehicleID + "@" + r.EventID }

func (r Registration) validate() error {
	if r.VehicleID == "" || r.PublicKey == "" {
		return fmt.Errorf("%w: registration needs vehicle id and public key", ErrInvalidOperation)
	}
	if !unit(r.InitialReputation) {
		return fmt.Errorf("%w: initial reputation %v", ErrInvalidOperation, r.InitialReputation)
	}
	return nil
}

func (e EventDecision) validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event decision needs event id", ErrInvalidOperation)
	}
	if !e.Verdict.Valid() {
		return fmt.Errorf("%w: verdict %q", ErrInvalidOperation, e.Verdict)
	}
	if !unit(e.Confidence) {
		return fmt.Errorf("%w: confidence %v", ErrInvalidOperation, e.Confidence)
	}
	return nil
}

func (r ReputationUpdate) validate() error {
	if r.VehicleID == "" || r.EventID == "" {
		return fmt.Errorf("%w: reputation update needs vehicle and event id", ErrInvalidOperation)
	}
	if !unit(r.OldReputation) || !unit(r.NewReputation) {
		return fmt.Errorf("%w: reputation %v -> %v", ErrInvalidOperation, r.OldReputation, r.NewReputation)
	}
	return nil
}

func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
