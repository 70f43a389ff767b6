package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

const decisionsNearQuery = `
SELECT
	event_id,
	winning_claim,
	verdict,
	confidence,
	x,
	y,
	occurred_at,
	reporters,
	claims
FROM roadledger_event_decisions FINAL
WHERE hypot(x - ?, y - ?) <= ?
ORDER BY occurred_at, event_id
LIMIT ?`

// DecisionsNear returns archived decisions within radius of loc, oldest first.
func (r *Repository) DecisionsNear(ctx context.Context, loc model.Location, radius float64, limit int) ([]model.EventDecision, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("decisions_near", err, start)
	}()

	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.conn.Query(ctx, decisionsNearQuery, loc.X, loc.Y, radius, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query decisions near: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var out []model.EventDecision
	for rows.Next() {
		var (
			d         model.EventDecision
			verdict   string
			reporters []string
			claims    []string
		)
		if err = rows.Scan(
			&d.EventID,
			&d.WinningClaim,
			&verdict,
			&d.Confidence,
			&d.Location.X,
			&d.Location.Y,
			&d.OccurredAt,
			&reporters,
			&claims,
		); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if len(reporters) != len(claims) {
			err = fmt.Errorf("decision %s: %d reporters for %d claims", d.EventID, len(reporters), len(claims))
			return nil, err
		}
		d.Verdict = model.Verdict(verdict)
		d.OccurredAt = d.OccurredAt.UTC()
		d.Reports = make([]model.ReportVote, len(reporters))
		for i := range reporters {
			d.Reports[i] = model.ReportVote{ReporterID: reporters[i], Claim: claims[i]}
		}
		out = append(out, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions near: %w", err)
	}
	return out, nil
}
