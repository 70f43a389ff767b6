package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/pkg/safe"
)

const insertOperationsQuery = `
INSERT INTO roadledger_operations (
	block_height,
	position,
	op_id,
	kind,
	timestamp,
	record
) VALUES`

// InsertOperations stores every operation of blocks in its wire form.
func (r *Repository) InsertOperations(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_operations", err, start)
	}()

	if countOperations(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertOperationsQuery)
	if err != nil {
		return fmt.Errorf("prepare operations batch: %w", err)
	}

	for _, b := range blocks {
		for i, op := range b.Operations {
			var position uint32
			if position, err = safe.Uint32(i); err != nil {
				_ = batch.Abort()
				return fmt.Errorf("position of operation %s: %w", op.ID(), err)
			}
			if err = batch.Append(
				b.Height,
				position,
				op.ID(),
				string(op.Kind()),
				op.Timestamp,
				codec.EncodeOperation(op),
			); err != nil {
				_ = batch.Abort()
				return fmt.Errorf("append operation %s: %w", op.ID(), err)
			}
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert operations: %w", err)
	}
	return nil
}

func countOperations(blocks []model.Block) int {
	n := 0
	for _, b := range blocks {
		n += len(b.Operations)
	}
	return n
}
