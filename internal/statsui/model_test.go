package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/store"
)

func openStore(t *testing.T, sessions int) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rootdrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	for i := 0; i < sessions; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		_, err := st.InsertSession(context.Background(), model.SessionStats{
			StartedAt:  start,
			EndedAt:    start.Add(time.Minute),
			Courses:    "主根1.1",
			Pressed:    12,
			Correct:    10,
			DurationMs: 60000,
		}, []model.ItemStats{
			{Problem: "王", Answer: "c", Correct: 10, Incorrect: 2, LatencySumMs: 9000, LatencyCount: 10},
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}
	return st
}

func TestModelRendersOverview(t *testing.T) {
	m := NewModel(openStore(t, 2), model.StatsConfig{CurveWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	if !strings.Contains(view, "Sessions: 2") {
		t.Fatalf("expected summary in view, got %q", view)
	}
	if !strings.Contains(view, "sessions=2") {
		t.Fatalf("expected filter summary in header, got %q", view)
	}
}

func TestModelProblemsTab(t *testing.T) {
	m := NewModel(openStore(t, 1), model.StatsConfig{CurveWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabProblems {
		t.Fatalf("expected problems tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "王") {
		t.Fatalf("expected problem row in table view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabRecent {
		t.Fatalf("expected wraparound to recent tab, got %d", m.activeTab)
	}
}

func TestCurveWindowSteps(t *testing.T) {
	cases := []struct {
		in, next, prev int
	}{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
	}
	for _, tc := range cases {
		if got := nextCurveWindow(tc.in); got != tc.next {
			t.Fatalf("next(%d) = %d, want %d", tc.in, got, tc.next)
		}
		if got := prevCurveWindow(tc.in); got != tc.prev {
			t.Fatalf("prev(%d) = %d, want %d", tc.in, got, tc.prev)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(openStore(t, 0), model.StatsConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}
