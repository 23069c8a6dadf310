// Package perf tracks per-problem answer latency and samples weak problems.
package perf

// DefaultWindow is the number of recent correct answers averaged per problem.
const DefaultWindow = 15

// Record keeps a sliding window of correct-answer latencies for one problem.
type Record struct {
	window   []int64
	index    int
	sum      int64
	answered int
	// prefix sum of averages up to and including this record, set by rebuild
	cumulative float64
}

func newRecord(window int) Record {
	return Record{window: make([]int64, window)}
}

// RecordCorrectAnswer adds a latency to the window, evicting the oldest sample once full.
func (r *Record) RecordCorrectAnswer(latencyMs int64) {
	if r.answered < len(r.window) {
		r.sum += latencyMs
	} else {
		r.sum += latencyMs - r.window[r.index]
	}
	r.window[r.index] = latencyMs
	r.index = (r.index + 1) % len(r.window)
	r.answered++
}

// AverageLatency returns the mean of the stored latencies, or 0 when never answered.
func (r *Record) AverageLatency() float64 {
	if r.answered < len(r.window) {
		return float64(r.sum) / float64(max(r.answered, 1))
	}
	return float64(r.sum) / float64(len(r.window))
}

// RecentSum returns the sum of the stored latencies.
func (r *Record) RecentSum() int64 {
	return r.sum
}

// AnsweredCount returns the number of correct answers ever recorded.
func (r *Record) AnsweredCount() int {
	return r.answered
}

// CumulativeWeight returns the right edge of this record's sampling interval.
func (r *Record) CumulativeWeight() float64 {
	return r.cumulative
}

// Recent returns the stored latencies, oldest first.
func (r *Record) Recent() []int64 {
	n := min(r.answered, len(r.window))
	out := make([]int64, 0, n)
	start := 0
	if r.answered >= len(r.window) {
		start = r.index
	}
	for i := 0; i < n; i++ {
		out = append(out, r.window[(start+i)%len(r.window)])
	}
	return out
}
