package batch

import (
	"math"

	"github.com/goodnatureofminers/roadledger/pkg/safe"
)

const (
	rateSmoothing       = 0.8
	avgRateSmoothing    = 0.95
	congestionSmoothing = 0.7

	baseLatency         = 0.5
	rateLatencyScale    = 100.0
	densityLatencyScale = 1000.0
	congestionPerCent   = 0.5

	shrinkLatencyRatio = 0.75
	growLatencyRatio   = 0.25
	burstRateRatio     = 1.5
	idleRateRatio      = 0.5
	baseShrink         = 0.9
	baseGrow           = 1.1
)

// targetSize is the DABP formula; latencies are in seconds.
func targetSize(base, lo, hi int, rate, avgRate, latency, maxLatency, congestion float64) int {
	ratio := 1.0
	if avgRate > 0 {
		ratio = rate / avgRate
	}
	if congestion <= 0 {
		congestion = 1
	}
	raw := float64(base) * ratio * math.Exp(-latency/maxLatency) / congestion
	if math.IsNaN(raw) {
		raw = float64(lo)
	}
	return int(safe.Clamp(raw, float64(lo), float64(hi)))
}

// estimateLatency grows with congestion, arrival rate and reporter density.
func estimateLatency(congestion, rate float64, reporters int, maxLatency float64) float64 {
	lat := baseLatency * congestion * (1 + rate/rateLatencyScale) * (1 + float64(reporters)/densityLatencyScale)
	return math.Min(lat, maxLatency)
}

// congestionTarget is the steady-state congestion for a reporter count.
func congestionTarget(reporters int) float64 {
	return 1 + congestionPerCent*(float64(reporters)/100)
}

func ema(prev, sample, smoothing float64) float64 {
	return smoothing*prev + (1-smoothing)*sample
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
