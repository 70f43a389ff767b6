package api

import (
	"context"

	"github.com/goodnatureofminers/roadledger/internal/ledger"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/internal/validator"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Node is the validator surface the API reads from and submits to.
	Node interface {
		Vehicle(id string) (ledger.Vehicle, bool)
		Vehicles() []ledger.Vehicle
		Tip() model.Block
		Block(height uint64) (model.Block, bool)
		Chain() []model.Block
		Decision(eventID string) (model.EventDecision, bool)
		DecisionsNear(loc model.Location, radius float64) []model.EventDecision
		Stats() validator.Stats
		Register(vehicleID, publicKey string) error
		SubmitReport(r model.EventReport)
	}
	// Runner executes fn on the goroutine that owns the node.
	Runner interface {
		Do(ctx context.Context, fn func()) error
	}
)
