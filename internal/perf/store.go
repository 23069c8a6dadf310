package perf

import (
	"fmt"
	"os"
	"time"
)

// Rand is the uniform source used for weighted sampling.
type Rand interface {
	Float64() float64
}

// Counters are the session-wide keystroke counters.
type Counters struct {
	StartedAt     time.Time
	LastCorrectAt time.Time
	Pressed       int
	Correct       int
}

type distState int

const (
	distDirty distState = iota
	distBuilt
)

// Store owns the records of one course load and the latency distribution over them.
//
// Any mutation leaves the distribution dirty; SampleWeighted rebuilds it before
// drawing when needed.
type Store struct {
	window      int
	records     []Record
	nonZero     int
	totalWeight float64
	state       distState
	counters    Counters

	// Warnf receives non-fatal sampling warnings.
	Warnf func(format string, args ...any)
}

// New returns an empty store using the given window size.
func New(window int) *Store {
	if window <= 0 {
		window = DefaultWindow
	}
	s := &Store{window: window, Warnf: logErrf}
	s.Reset(0, time.Now())
	return s
}

// Reset discards all records and allocates count fresh ones.
func (s *Store) Reset(count int, now time.Time) {
	s.records = make([]Record, count)
	for i := range s.records {
		s.records[i] = newRecord(s.window)
	}
	s.nonZero = 0
	s.totalWeight = 0
	s.state = distDirty
	s.counters = Counters{StartedAt: now, LastCorrectAt: now}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Window returns the per-record window size.
func (s *Store) Window() int {
	return s.window
}

// Record returns a copy of the record for id.
func (s *Store) Record(id int) Record {
	r := s.records[id]
	r.window = append([]int64(nil), r.window...)
	return r
}

// NonZeroCount returns the number of records with at least one answer.
func (s *Store) NonZeroCount() int {
	return s.nonZero
}

// TotalWeight returns the sum of averages as of the last rebuild.
func (s *Store) TotalWeight() float64 {
	return s.totalWeight
}

// Built reports whether the distribution reflects every recorded answer.
func (s *Store) Built() bool {
	return s.state == distBuilt
}

// RecordCorrectAnswer adds a correct-answer latency for id.
func (s *Store) RecordCorrectAnswer(id int, latencyMs int64) {
	if id < 0 || id >= len(s.records) {
		s.warnf("perf: ignoring answer for unknown problem %d (have %d)\n", id, len(s.records))
		return
	}
	rec := &s.records[id]
	if rec.answered == 0 {
		s.nonZero++
	}
	rec.RecordCorrectAnswer(latencyMs)
	s.state = distDirty
}

// RebuildDistribution recomputes the cumulative weights in id order.
func (s *Store) RebuildDistribution() {
	total := 0.0
	for i := range s.records {
		total += s.records[i].AverageLatency()
		s.records[i].cumulative = total
	}
	s.totalWeight = total
	s.state = distBuilt
}

// LowerBound returns the leftmost id whose cumulative weight is >= offset.
// An offset beyond the last weight is clamped to the last id.
func (s *Store) LowerBound(offset float64) int {
	l, r := 0, len(s.records)
	for l < r {
		m := int(uint(l+r) >> 1)
		if s.records[m].cumulative < offset {
			l = m + 1
		} else {
			r = m
		}
	}
	if r >= len(s.records) {
		s.warnf("perf: lower bound %d out of range for offset %g (have %d)\n", r, offset, len(s.records))
		r = len(s.records) - 1
	}
	return r
}

// SampleWeighted draws up to count ids with probability proportional to their
// average latency. At most NonZeroCount ids are returned; repeats are allowed.
func (s *Store) SampleWeighted(rnd Rand, count int) []int {
	if s.state != distBuilt {
		s.RebuildDistribution()
	}
	count = min(count, s.nonZero)
	if count <= 0 || s.totalWeight <= 0 {
		return nil
	}
	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		offset := rnd.Float64() * s.totalWeight
		ids = append(ids, s.pick(offset))
	}
	return ids
}

// pick resolves an offset to an id, stepping past zero-width intervals that
// an offset sitting exactly on a boundary can land on.
func (s *Store) pick(offset float64) int {
	id := s.LowerBound(offset)
	for id < len(s.records)-1 && s.records[id].AverageLatency() == 0 {
		id++
	}
	return id
}

// ObserveCorrect records a correct answer for id at now, measuring latency
// from the previous correct answer.
func (s *Store) ObserveCorrect(id int, now time.Time) int64 {
	s.counters.Pressed++
	s.counters.Correct++
	latency := now.Sub(s.counters.LastCorrectAt).Milliseconds()
	s.RecordCorrectAnswer(id, latency)
	s.counters.LastCorrectAt = now
	return latency
}

// ObserveIncorrect counts a wrong submission and pushes the latency clock back
// by penalty, which lands in the next measured latency.
func (s *Store) ObserveIncorrect(penalty time.Duration) {
	s.counters.Pressed++
	s.counters.LastCorrectAt = s.counters.LastCorrectAt.Add(-penalty)
}

// Counters returns the session counters.
func (s *Store) Counters() Counters {
	return s.counters
}

func (s *Store) warnf(format string, args ...any) {
	if s.Warnf != nil {
		s.Warnf(format, args...)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
