// Package session drives one practice session: it turns keystrokes into
// scheduler updates and keeps the current row.
package session

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/rootdrill/internal/course"
	"github.com/verte-zerg/rootdrill/internal/generator"
	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/perf"
)

// DefaultPenalty is how far a wrong answer pushes the latency clock back.
const DefaultPenalty = 5 * time.Second

// ErrEmptyPool is returned by Load when the selected courses have no problems.
var ErrEmptyPool = errors.New("session: problem pool is empty")

// Outcome classifies the effect of a keystroke.
type Outcome int

// Keystroke outcomes.
const (
	Pending Outcome = iota
	Correct
	Incorrect
)

// Event reports what a keystroke did.
type Event struct {
	Outcome   Outcome
	ID        int
	LatencyMs int64
	NewRow    bool
}

type itemStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithWarnf routes scheduler warnings.
func WithWarnf(warnf func(format string, args ...any)) Option {
	return func(s *Session) {
		s.perf.Warnf = warnf
	}
}

// Session owns the scheduler state of one loaded course selection.
type Session struct {
	cfg  model.Config
	gen  *generator.Generator
	perf *perf.Store
	pool *course.Pool
	now  func() time.Time

	row       model.Row
	history   []int
	typed     string
	wrongTip  string
	itemStats map[int]*itemStat
}

// New constructs a session. Call Load before typing.
func New(cfg model.Config, gen *generator.Generator, opts ...Option) *Session {
	if cfg.RowSize <= 0 {
		cfg.RowSize = generator.DefaultRowSize
	}
	if cfg.Window <= 0 {
		cfg.Window = perf.DefaultWindow
	}
	s := &Session{
		cfg:  cfg,
		gen:  gen,
		perf: perf.New(cfg.Window),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load resets the scheduler for pool and generates the first row.
func (s *Session) Load(pool *course.Pool) error {
	s.pool = pool
	s.perf.Reset(pool.Len(), s.now())
	s.itemStats = map[int]*itemStat{}
	s.typed = ""
	s.wrongTip = ""
	s.history = nil
	s.row = model.Row{}
	if pool.Len() == 0 {
		return ErrEmptyPool
	}
	s.nextRow()
	return nil
}

// Config returns the session settings.
func (s *Session) Config() model.Config {
	return s.cfg
}

// SetFlags updates the study, fast and hint toggles.
func (s *Session) SetFlags(study, fast, hint bool) {
	s.cfg.Study = study
	s.cfg.Fast = fast
	s.cfg.Hint = hint
}

// Pool returns the loaded pool.
func (s *Session) Pool() *course.Pool {
	return s.pool
}

// Perf exposes the performance store.
func (s *Session) Perf() *perf.Store {
	return s.perf
}

// Row returns the row being answered.
func (s *Session) Row() *model.Row {
	return &s.row
}

// History returns the ids answered correctly in the current row.
func (s *Session) History() []int {
	return s.history
}

// Typed returns the pending input.
func (s *Session) Typed() string {
	return s.typed
}

// WrongTip returns the correction shown after a wrong answer, or "".
func (s *Session) WrongTip() string {
	return s.wrongTip
}

// Backspace removes the last pending rune.
func (s *Session) Backspace() {
	if s.typed == "" {
		return
	}
	runes := []rune(s.typed)
	s.typed = string(runes[:len(runes)-1])
}

// Type handles one input rune. Space submits the pending input; in fast mode
// input is also submitted once it reaches the answer length.
func (s *Session) Type(r rune) Event {
	id, _, ok := s.row.Current()
	if !ok || s.pool == nil {
		return Event{Outcome: Pending}
	}
	r = unicode.ToLower(r)
	if r != ' ' {
		s.typed += string(r)
		s.wrongTip = ""
	}
	answer := s.pool.Answer(id)
	if r != ' ' && (!s.cfg.Fast || len(s.typed) < len(answer)) {
		return Event{Outcome: Pending, ID: id}
	}
	return s.submit(id, answer)
}

func (s *Session) submit(id int, answer string) Event {
	typed := s.typed
	s.typed = ""
	stat := s.itemStat(id)
	if typed == answer {
		latency := s.perf.ObserveCorrect(id, s.now())
		stat.correct++
		stat.latencySumMs += latency
		stat.latencyCount++
		s.history = append(s.history, id)
		ev := Event{Outcome: Correct, ID: id, LatencyMs: latency}
		if !s.row.AdvanceCursor() {
			s.nextRow()
			ev.NewRow = true
		}
		return ev
	}
	stat.incorrect++
	s.perf.ObserveIncorrect(s.cfg.Penalty)
	s.wrongTip = strings.ToUpper(answer)
	if s.cfg.Hint {
		if hint := s.pool.Hint(id); hint != "" {
			s.wrongTip += ":" + hint
		}
	}
	return Event{Outcome: Incorrect, ID: id}
}

func (s *Session) nextRow() {
	s.row = s.gen.Generate(s.pool, s.perf, s.cfg.RowSize, s.cfg.ReinforceScale, s.cfg.Study)
	s.history = nil
}

func (s *Session) itemStat(id int) *itemStat {
	entry, ok := s.itemStats[id]
	if !ok {
		entry = &itemStat{}
		s.itemStats[id] = entry
	}
	return entry
}

// Status is the running summary shown under the row.
type Status struct {
	Minutes    int
	KeysPerMin int
	Accuracy   int
}

// Status computes elapsed minutes, correct answers per minute and accuracy.
func (s *Session) Status() Status {
	c := s.perf.Counters()
	elapsed := s.now().Sub(c.StartedAt)
	minutes := elapsed.Minutes()
	st := Status{
		Minutes:    int(minutes),
		KeysPerMin: int(float64(c.Correct) / max(1, minutes)),
	}
	if c.Pressed > 0 {
		st.Accuracy = c.Correct * 100 / c.Pressed
	}
	return st
}

// Summary returns the history record for the session so far. ok is false when
// nothing was submitted.
func (s *Session) Summary(courses []string) (model.SessionStats, []model.ItemStats, bool) {
	c := s.perf.Counters()
	if c.Pressed == 0 || s.pool == nil {
		return model.SessionStats{}, nil, false
	}
	endedAt := s.now()
	stats := model.SessionStats{
		StartedAt:  c.StartedAt,
		EndedAt:    endedAt,
		Courses:    strings.Join(courses, ","),
		Study:      s.cfg.Study,
		Fast:       s.cfg.Fast,
		Pressed:    c.Pressed,
		Correct:    c.Correct,
		DurationMs: endedAt.Sub(c.StartedAt).Milliseconds(),
	}
	// ids sharing a problem and answer are stored as one history row
	type itemKey struct{ problem, answer string }
	index := map[itemKey]int{}
	items := make([]model.ItemStats, 0, len(s.itemStats))
	for id, entry := range s.itemStats {
		key := itemKey{s.pool.Problem(id), s.pool.Answer(id)}
		i, ok := index[key]
		if !ok {
			i = len(items)
			index[key] = i
			items = append(items, model.ItemStats{Problem: key.problem, Answer: key.answer})
		}
		items[i].Correct += entry.correct
		items[i].Incorrect += entry.incorrect
		items[i].LatencySumMs += entry.latencySumMs
		items[i].LatencyCount += entry.latencyCount
	}
	return stats, items, true
}
