package credibility

import (
	"strconv"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/model"
)

// equivalent groups event subjects that describe the same incident.
var equivalent = map[string]string{
	"Accident":     "collision",
	"Breakdown":    "collision",
	"Jam":          "obstruction",
	"Construction": "obstruction",
	"Roadwork":     "obstruction",
}

// subjectsMatch compares claims by subject so a denial joins the cluster of
// the claim it denies.
func subjectsMatch(a, b string) bool {
	sa, sb := model.ClaimSubject(a), model.ClaimSubject(b)
	if sa == sb {
		return true
	}
	ca, okA := equivalent[sa]
	cb, okB := equivalent[sb]
	return okA && okB && ca == cb
}

type cluster struct {
	id         string
	claim      string
	location   model.Location
	occurredAt time.Time
	reports    []model.EventReport
	reporters  map[string]struct{}
	timer      clock.Handle
}

// newCluster opens a cluster around first. seq keeps ids unique when one
// reporter opens several clusters at the same instant.
func newCluster(first model.EventReport, seq uint64) *cluster {
	return &cluster{
		id:         "evt-" + first.ReporterID + "-" + strconv.FormatInt(first.OccurredAt.UnixNano(), 10) + "-" + strconv.FormatUint(seq, 10),
		claim:      first.ClaimedType,
		location:   first.Location,
		occurredAt: first.OccurredAt,
		reports:    []model.EventReport{first},
		reporters:  map[string]struct{}{first.ReporterID: {}},
	}
}

func (c *cluster) matches(r model.EventReport, maxDistance float64, maxSkew time.Duration) bool {
	if !subjectsMatch(r.ClaimedType, c.claim) {
		return false
	}
	if r.Location.DistanceTo(c.location) >= maxDistance {
		return false
	}
	skew := r.OccurredAt.Sub(c.occurredAt)
	if skew < 0 {
		skew = -skew
	}
	return skew < maxSkew
}

func (c *cluster) votes() []model.ReportVote {
	out := make([]model.ReportVote, len(c.reports))
	for i, r := range c.reports {
		out[i] = model.ReportVote{ReporterID: r.ReporterID, Claim: r.ClaimedType}
	}
	return out
}
