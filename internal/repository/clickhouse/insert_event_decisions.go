package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

const insertEventDecisionsQuery = `
INSERT INTO roadledger_event_decisions (
	event_id,
	block_height,
	winning_claim,
	verdict,
	confidence,
	x,
	y,
	occurred_at,
	reporters,
	claims
) VALUES`

// InsertEventDecisions stores the event decisions carried by blocks.
func (r *Repository) InsertEventDecisions(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_event_decisions", err, start)
	}()

	type row struct {
		height   uint64
		decision model.EventDecision
	}
	var rows []row
	for _, b := range blocks {
		for _, op := range b.Operations {
			if d, ok := op.Payload.(model.EventDecision); ok {
				rows = append(rows, row{height: b.Height, decision: d})
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertEventDecisionsQuery)
	if err != nil {
		return fmt.Errorf("prepare event decisions batch: %w", err)
	}

	for _, row := range rows {
		d := row.decision
		reporters := make([]string, len(d.Reports))
		claims := make([]string, len(d.Reports))
		for i, v := range d.Reports {
			reporters[i] = v.ReporterID
			claims[i] = v.Claim
		}
		if err = batch.Append(
			d.EventID,
			row.height,
			d.WinningClaim,
			string(d.Verdict),
			d.Confidence,
			d.Location.X,
			d.Location.Y,
			d.OccurredAt,
			reporters,
			claims,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append event decision %s: %w", d.EventID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert event decisions: %w", err)
	}
	return nil
}
