package credibility

import (
	"slices"

	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/pkg/safe"
)

const flatSpread = 1e-9

// ballot is one report's claim with its raw trust.
type ballot struct {
	claim string
	trust float64
}

// outcome is the result of weighing a cluster.
type outcome struct {
	winner      string
	confidence  float64
	verdict     model.Verdict
	confidences map[string]float64
}

// normalize min-max scales trusts into [0,1]; a flat set maps to 0.5 each.
func normalize(trusts []float64) []float64 {
	out := make([]float64, len(trusts))
	if len(trusts) == 0 {
		return out
	}
	lo, hi := slices.Min(trusts), slices.Max(trusts)
	for i, t := range trusts {
		if hi-lo < flatSpread {
			out[i] = 0.5
			continue
		}
		out[i] = (t - lo) / (hi - lo)
	}
	return out
}

// weigh computes per-claim confidence and the verdict. Ties go to the
// lexicographically smallest claim.
func weigh(ballots []ballot, threshold float64) outcome {
	trusts := make([]float64, len(ballots))
	for i, b := range ballots {
		trusts[i] = b.trust
	}
	norm := normalize(trusts)

	var total float64
	support := make(map[string]float64)
	for i, b := range ballots {
		total += norm[i]
		support[b.claim] += norm[i]
	}

	claims := make([]string, 0, len(support))
	for c := range support {
		claims = append(claims, c)
	}
	slices.Sort(claims)

	res := outcome{verdict: model.VerdictUncertain, confidences: make(map[string]float64, len(claims)), confidence: -1}
	for _, c := range claims {
		conf := 0.0
		if total > 0 {
			conf = safe.Unit(support[c] / total)
		}
		res.confidences[c] = conf
		if conf > res.confidence {
			res.winner, res.confidence = c, conf
		}
	}
	if res.confidence < 0 {
		res.confidence = 0
	}
	if res.confidence > threshold {
		res.verdict = model.VerdictValidated
	}
	return res
}

// nextReputation rewards a correct reporter by alpha of its headroom and
// penalizes an incorrect one by beta of its reputation.
func nextReputation(old float64, correct bool, alpha, beta float64) float64 {
	if correct {
		return safe.Unit(old + alpha*(1-old))
	}
	return safe.Unit(old - beta*old)
}
