package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/pkg/safe"
)

const insertBlocksQuery = `
INSERT INTO roadledger_blocks (
	height,
	hash,
	previous_hash,
	proposer_id,
	timestamp,
	operation_count,
	signers
) VALUES`

// InsertBlocks stores one header row per committed block.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, b := range blocks {
		signers := make([]string, len(b.Proof))
		for i, s := range b.Proof {
			signers[i] = s.ValidatorID
		}
		var count uint32
		if count, err = safe.Uint32(len(b.Operations)); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("operation count of block %d: %w", b.Height, err)
		}
		if err = batch.Append(
			b.Height,
			b.Hash,
			b.PreviousHash,
			b.ProposerID,
			b.Timestamp,
			count,
			signers,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block %d: %w", b.Height, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
