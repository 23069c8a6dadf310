package stats

import (
	"sort"

	"github.com/verte-zerg/rootdrill/internal/model"
)

// SlowestItems orders aggregates by average correct-answer latency, slowest
// first, and keeps the top n (all when n <= 0).
func SlowestItems(aggs []model.ItemAggregate, n int) []model.ItemAggregate {
	candidates := make([]model.ItemAggregate, len(aggs))
	copy(candidates, aggs)
	sort.SliceStable(candidates, func(i, j int) bool {
		li := averageLatency(candidates[i])
		lj := averageLatency(candidates[j])
		if li == lj {
			return candidates[i].Problem < candidates[j].Problem
		}
		return li > lj
	})
	if n > 0 && n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}

func averageLatency(agg model.ItemAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}

func itemAccuracy(agg model.ItemAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 0
	}
	return float64(agg.Correct) / float64(total)
}
