package session

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/rootdrill/internal/course"
	"github.com/verte-zerg/rootdrill/internal/generator"
	"github.com/verte-zerg/rootdrill/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, cfg model.Config) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	gen := generator.NewWithSource(rand.NewSource(1))
	s := New(cfg, gen, WithClock(clock.now), WithWarnf(func(string, ...any) {}))
	pool := course.NewPool(course.Course{Name: "t", Entries: []course.Entry{
		{Answer: "ab", Problems: "甲", Hint: "first"},
		{Answer: "c", Problems: "乙"},
	}})
	if err := s.Load(pool); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, clock
}

func typeString(s *Session, text string) Event {
	var ev Event
	for _, r := range text {
		ev = s.Type(r)
	}
	return ev
}

func TestLoadEmptyPool(t *testing.T) {
	s := New(model.Config{}, generator.NewWithSource(rand.NewSource(1)))
	if err := s.Load(course.NewPool()); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if s.Row().Len() != 0 {
		t.Fatalf("expected empty row")
	}
	if ev := s.Type('a'); ev.Outcome != Pending {
		t.Fatalf("expected typing without a row to be ignored")
	}
}

func TestCorrectAnswerRecordsLatency(t *testing.T) {
	s, clock := newTestSession(t, model.Config{RowSize: 4, Penalty: DefaultPenalty})
	id, _, _ := s.Row().Current()
	answer := s.Pool().Answer(id)

	clock.advance(1500 * time.Millisecond)
	ev := typeString(s, answer+" ")
	if ev.Outcome != Correct || ev.ID != id || ev.LatencyMs != 1500 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if s.Row().Position() != 1 {
		t.Fatalf("expected cursor to advance, got %d", s.Row().Position())
	}
	rec := s.Perf().Record(id)
	if rec.AnsweredCount() != 1 || rec.RecentSum() != 1500 {
		t.Fatalf("unexpected record: count %d sum %d", rec.AnsweredCount(), rec.RecentSum())
	}
	if len(s.History()) != 1 || s.History()[0] != id {
		t.Fatalf("unexpected history: %v", s.History())
	}
}

func TestPendingUntilSpace(t *testing.T) {
	s, _ := newTestSession(t, model.Config{RowSize: 4})
	if ev := s.Type('X'); ev.Outcome != Pending {
		t.Fatalf("expected pending, got %+v", ev)
	}
	if s.Typed() != "x" {
		t.Fatalf("expected lowercased input, got %q", s.Typed())
	}
	s.Backspace()
	if s.Typed() != "" {
		t.Fatalf("expected backspace to clear input, got %q", s.Typed())
	}
}

func TestFastModeSubmitsAtAnswerLength(t *testing.T) {
	s, _ := newTestSession(t, model.Config{RowSize: 4, Fast: true})
	id, _, _ := s.Row().Current()
	ev := typeString(s, s.Pool().Answer(id))
	if ev.Outcome != Correct {
		t.Fatalf("expected fast mode to submit without space, got %+v", ev)
	}
}

func TestIncorrectAppliesPenaltyAndTip(t *testing.T) {
	s, clock := newTestSession(t, model.Config{RowSize: 4, Hint: true, Penalty: 5 * time.Second})
	id, _, _ := s.Row().Current()
	ev := typeString(s, "zz ")
	if ev.Outcome != Incorrect {
		t.Fatalf("expected incorrect, got %+v", ev)
	}
	want := "AB:first"
	if s.Pool().Answer(id) == "c" {
		want = "C"
	}
	if s.WrongTip() != want {
		t.Fatalf("expected wrong tip %q, got %q", want, s.WrongTip())
	}
	if s.Row().Position() != 0 {
		t.Fatalf("expected cursor to stay on the missed problem")
	}

	clock.advance(time.Second)
	ev = typeString(s, s.Pool().Answer(id)+" ")
	if ev.Outcome != Correct || ev.LatencyMs != 6000 {
		t.Fatalf("expected penalized latency 6000, got %+v", ev)
	}
	if s.WrongTip() != "" {
		t.Fatalf("expected wrong tip to clear")
	}
	st := s.Status()
	if st.Accuracy != 50 {
		t.Fatalf("expected 50%% accuracy, got %d", st.Accuracy)
	}
}

func TestRowRolloverGeneratesNewRow(t *testing.T) {
	s, clock := newTestSession(t, model.Config{RowSize: 3})
	var last Event
	for i := 0; i < 3; i++ {
		clock.advance(200 * time.Millisecond)
		id, _, _ := s.Row().Current()
		last = typeString(s, s.Pool().Answer(id)+" ")
	}
	if !last.NewRow {
		t.Fatalf("expected the last answer to start a new row")
	}
	if s.Row().Position() != 0 || s.Row().Len() != 3 {
		t.Fatalf("expected a fresh row, got position %d len %d", s.Row().Position(), s.Row().Len())
	}
	if len(s.History()) != 0 {
		t.Fatalf("expected history to reset with the row")
	}
}

func TestSummary(t *testing.T) {
	s, clock := newTestSession(t, model.Config{RowSize: 4, Study: true})
	if _, _, ok := s.Summary([]string{"t"}); ok {
		t.Fatalf("expected no summary before any answer")
	}
	clock.advance(time.Second)
	id, _, _ := s.Row().Current()
	typeString(s, s.Pool().Answer(id)+" ")
	stats, items, ok := s.Summary([]string{"t", "u"})
	if !ok {
		t.Fatalf("expected summary")
	}
	if stats.Courses != "t,u" || stats.Pressed != 1 || stats.Correct != 1 || stats.DurationMs != 1000 || !stats.Study {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(items) != 1 || items[0].Problem != s.Pool().Problem(id) || items[0].LatencySumMs != 1000 {
		t.Fatalf("unexpected items: %+v", items)
	}
}
