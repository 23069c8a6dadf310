package perf

import (
	"math/rand"
	"testing"
	"time"
)

type fixedRand struct {
	values []float64
	i      int
}

func (f *fixedRand) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func newTestStore(t *testing.T, n int) (*Store, *[]string) {
	t.Helper()
	var warnings []string
	s := New(DefaultWindow)
	s.Warnf = func(format string, _ ...any) {
		warnings = append(warnings, format)
	}
	s.Reset(n, time.Unix(0, 0))
	return s, &warnings
}

func TestNeverAnsweredAverageIsZero(t *testing.T) {
	for _, n := range []int{1, 3, 50} {
		s, _ := newTestStore(t, n)
		for id := 0; id < n; id++ {
			rec := s.Record(id)
			if rec.AverageLatency() != 0 {
				t.Fatalf("pool %d: expected zero average for %d", n, id)
			}
		}
	}
}

func TestRebuildDistributionScenario(t *testing.T) {
	s, _ := newTestStore(t, 3)
	s.RecordCorrectAnswer(0, 100)
	s.RecordCorrectAnswer(1, 200)
	if s.Built() {
		t.Fatalf("expected dirty distribution after an answer")
	}
	s.RebuildDistribution()
	if !s.Built() {
		t.Fatalf("expected built distribution after rebuild")
	}
	if s.TotalWeight() != 300 {
		t.Fatalf("expected total weight 300, got %v", s.TotalWeight())
	}
	want := []float64{100, 300, 300}
	for id, w := range want {
		rec := s.Record(id)
		if rec.CumulativeWeight() != w {
			t.Fatalf("expected cumulative weight %v for %d, got %v", w, id, rec.CumulativeWeight())
		}
	}

	cases := []struct {
		offset float64
		want   int
	}{
		{offset: 0, want: 0},
		{offset: 50, want: 0},
		{offset: 250, want: 1},
	}
	for _, tc := range cases {
		if got := s.LowerBound(tc.offset); got != tc.want {
			t.Fatalf("offset %v: expected %d, got %d", tc.offset, tc.want, got)
		}
	}

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		for _, id := range s.SampleWeighted(rnd, 2) {
			if id == 2 {
				t.Fatalf("never-answered problem was sampled")
			}
		}
	}
}

func TestCumulativeWeightsNonDecreasing(t *testing.T) {
	s, _ := newTestStore(t, 40)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		s.RecordCorrectAnswer(rnd.Intn(40), int64(rnd.Intn(2000)))
	}
	s.RebuildDistribution()
	prev := 0.0
	for id := 0; id < s.Len(); id++ {
		rec := s.Record(id)
		if rec.CumulativeWeight() < prev {
			t.Fatalf("cumulative weight decreased at %d", id)
		}
		prev = rec.CumulativeWeight()
	}
	if prev != s.TotalWeight() {
		t.Fatalf("expected last cumulative weight %v to equal total %v", prev, s.TotalWeight())
	}
}

func TestSampleWeightedClampsToNonZeroCount(t *testing.T) {
	s, _ := newTestStore(t, 10)
	s.RecordCorrectAnswer(3, 100)
	s.RecordCorrectAnswer(7, 400)
	s.RecordCorrectAnswer(7, 200)
	ids := s.SampleWeighted(rand.New(rand.NewSource(3)), 8)
	if len(ids) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(ids))
	}
	for _, id := range ids {
		if id != 3 && id != 7 {
			t.Fatalf("unexpected pick %d", id)
		}
	}
}

func TestSampleWeightedRebuildsWhenDirty(t *testing.T) {
	s, _ := newTestStore(t, 2)
	s.RecordCorrectAnswer(0, 100)
	s.RebuildDistribution()
	s.RecordCorrectAnswer(1, 100000)
	ids := s.SampleWeighted(&fixedRand{values: []float64{0.5}}, 1)
	if !s.Built() {
		t.Fatalf("expected sampling to rebuild the distribution")
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected the slow problem to be picked, got %v", ids)
	}
}

func TestSampleWeightedSkipsLeadingZeroWeight(t *testing.T) {
	s, _ := newTestStore(t, 3)
	s.RecordCorrectAnswer(2, 100)
	ids := s.SampleWeighted(&fixedRand{values: []float64{0}}, 1)
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected offset 0 to resolve to problem 2, got %v", ids)
	}
}

func TestSampleWeightedEmptyStore(t *testing.T) {
	s, _ := newTestStore(t, 5)
	if ids := s.SampleWeighted(rand.New(rand.NewSource(1)), 4); len(ids) != 0 {
		t.Fatalf("expected no picks without history, got %v", ids)
	}
}

func TestLowerBoundClampsOverflow(t *testing.T) {
	s, warnings := newTestStore(t, 2)
	s.RecordCorrectAnswer(0, 10)
	s.RebuildDistribution()
	if got := s.LowerBound(11); got != 1 {
		t.Fatalf("expected clamp to last index, got %d", got)
	}
	if len(*warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(*warnings))
	}
}

func TestObserveLatencyAndPenalty(t *testing.T) {
	s, _ := newTestStore(t, 2)
	start := time.Unix(0, 0)
	if got := s.ObserveCorrect(0, start.Add(800*time.Millisecond)); got != 800 {
		t.Fatalf("expected latency 800, got %d", got)
	}
	s.ObserveIncorrect(5 * time.Second)
	if got := s.ObserveCorrect(1, start.Add(1200*time.Millisecond)); got != 5400 {
		t.Fatalf("expected penalized latency 5400, got %d", got)
	}
	c := s.Counters()
	if c.Pressed != 3 || c.Correct != 2 {
		t.Fatalf("unexpected counters: %+v", c)
	}
	if s.NonZeroCount() != 2 {
		t.Fatalf("expected 2 answered problems, got %d", s.NonZeroCount())
	}
}

func TestResetClearsState(t *testing.T) {
	s, _ := newTestStore(t, 2)
	s.ObserveCorrect(0, time.Unix(1, 0))
	now := time.Unix(100, 0)
	s.Reset(4, now)
	if s.Len() != 4 || s.NonZeroCount() != 0 || s.TotalWeight() != 0 {
		t.Fatalf("expected a fresh store after reset")
	}
	c := s.Counters()
	if !c.StartedAt.Equal(now) || !c.LastCorrectAt.Equal(now) || c.Pressed != 0 || c.Correct != 0 {
		t.Fatalf("unexpected counters after reset: %+v", c)
	}
}

func TestRecordCorrectAnswerIgnoresUnknownID(t *testing.T) {
	s, warnings := newTestStore(t, 1)
	s.RecordCorrectAnswer(5, 100)
	if s.NonZeroCount() != 0 || len(*warnings) != 1 {
		t.Fatalf("expected unknown id to be ignored with a warning")
	}
}
