package credibility

import "math"

// Suspicion scores a reporter from its outcome history, oldest first.
// Only the last window entries count. An empty history scores 0.
func Suspicion(history []uint8, window int, gamma, reliabilityWeight, volatilityWeight float64) float64 {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	n := len(history)
	if n == 0 {
		return 0
	}

	var num, den float64
	for i, h := range history {
		w := math.Pow(gamma, float64(n-1-i))
		num += float64(h) * w
		den += w
	}
	reliability := num / den

	var volatility float64
	if n > 1 {
		var flips float64
		for i := 1; i < n; i++ {
			if history[i] != history[i-1] {
				flips++
			}
		}
		volatility = flips / float64(n-1)
	}

	return reliabilityWeight*(1-reliability) + volatilityWeight*volatility
}
