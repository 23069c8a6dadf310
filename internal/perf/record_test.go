package perf

import "testing"

func TestRecordSlidingWindowSum(t *testing.T) {
	r := newRecord(DefaultWindow)
	for i := 1; i <= 20; i++ {
		r.RecordCorrectAnswer(int64(i * 10))
	}
	var want int64
	for i := 6; i <= 20; i++ {
		want += int64(i * 10)
	}
	if r.RecentSum() != want {
		t.Fatalf("expected recent sum %d, got %d", want, r.RecentSum())
	}
	if got := r.AverageLatency(); got != float64(want)/15 {
		t.Fatalf("expected average %v, got %v", float64(want)/15, got)
	}
	if r.AnsweredCount() != 20 {
		t.Fatalf("expected 20 answers, got %d", r.AnsweredCount())
	}
}

func TestRecordSumMatchesLastWindow(t *testing.T) {
	const window = 4
	r := newRecord(window)
	values := []int64{7, 3, 12, 0, 5, 9, 1, 30, 2, 2, 8}
	for i, v := range values {
		r.RecordCorrectAnswer(v)
		start := max(0, i+1-window)
		var want int64
		for _, x := range values[start : i+1] {
			want += x
		}
		if r.RecentSum() != want {
			t.Fatalf("after %d answers: expected sum %d, got %d", i+1, want, r.RecentSum())
		}
	}
}

func TestRecordAveragePartialWindow(t *testing.T) {
	r := newRecord(DefaultWindow)
	if r.AverageLatency() != 0 {
		t.Fatalf("expected 0 average for a new record, got %v", r.AverageLatency())
	}
	r.RecordCorrectAnswer(100)
	r.RecordCorrectAnswer(200)
	if r.AverageLatency() != 150 {
		t.Fatalf("expected average 150, got %v", r.AverageLatency())
	}
}

func TestRecordRecentOldestFirst(t *testing.T) {
	r := newRecord(3)
	for _, v := range []int64{1, 2, 3, 4, 5} {
		r.RecordCorrectAnswer(v)
	}
	got := r.Recent()
	want := []int64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
