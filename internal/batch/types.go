package batch

import (
	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Proposer is the slice of the owning validator the controller may call.
	Proposer interface {
		BroadcastBatch(b codec.Batch)
		EnqueueForProposal(ops []model.Operation)
		RequestProposal()
	}
	Metrics interface {
		ObserveFlush(trigger string, size, target int)
	}
)
