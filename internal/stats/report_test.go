package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/store"
)

func seedStore(t *testing.T) (*store.Store, []int64) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rootdrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		id, err := st.InsertSession(ctx, model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Courses:    "主根1.1",
			Pressed:    11,
			Correct:    10,
			DurationMs: end.Sub(start).Milliseconds(),
		}, []model.ItemStats{
			{Problem: "王", Answer: "c", Correct: 5, LatencySumMs: 4000, LatencyCount: 5},
			{Problem: "土", Answer: "b", Correct: 5, Incorrect: 1, LatencySumMs: 9000, LatencyCount: 5},
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	return st, ids
}

func TestBuildReport(t *testing.T) {
	st, ids := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{
		Course:      "主根1.1",
		Last:        2,
		CurveWindow: 1,
	})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("unexpected window session ids: %v", report.WindowSessionIDs)
	}
	if len(report.ItemAggsAll) != 2 || len(report.ItemAggsWindow) != 2 {
		t.Fatalf("expected item aggregates, got %d/%d", len(report.ItemAggsAll), len(report.ItemAggsWindow))
	}
	for _, agg := range report.ItemAggsAll {
		if agg.Problem == "土" && agg.LatencySumMs != 18000 {
			t.Fatalf("expected latency from two sessions, got %+v", agg)
		}
	}
}

func TestExportXLSX(t *testing.T) {
	st, _ := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	path := filepath.Join(t.TempDir(), "history.xlsx")
	if err := ExportXLSX(path, report); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()
	sessions, err := f.GetRows(sessionsSheet)
	if err != nil {
		t.Fatalf("read sessions: %v", err)
	}
	if len(sessions) != 4 {
		t.Fatalf("expected header and 3 sessions, got %d rows", len(sessions))
	}
	problems, err := f.GetRows(problemsSheet)
	if err != nil {
		t.Fatalf("read problems: %v", err)
	}
	if len(problems) != 3 || problems[1][0] != "土" {
		t.Fatalf("expected slowest problem first, got %v", problems)
	}
}
