package stats

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sessionsSheet = "Sessions"
	problemsSheet = "Problems"
)

// ExportXLSX writes the report's sessions and per-problem aggregates to a workbook.
func ExportXLSX(path string, report Report) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close; the file is already saved.
			_ = cerr
		}
	}()

	f.SetSheetName(f.GetSheetName(0), sessionsSheet)
	sessionRows := [][]any{{"Ended", "Courses", "Pressed", "Correct", "Duration (s)", "Keys/min", "Accuracy"}}
	for _, s := range report.Sessions {
		kpm, acc := SessionMetrics(s.Pressed, s.Correct, s.DurationMs)
		sessionRows = append(sessionRows, []any{
			s.EndedAt.Local().Format(time.DateTime),
			s.Courses,
			s.Pressed,
			s.Correct,
			float64(s.DurationMs) / 1000,
			kpm,
			acc,
		})
	}
	if err := writeRows(f, sessionsSheet, sessionRows); err != nil {
		return err
	}

	if _, err := f.NewSheet(problemsSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	headers, rows := ItemRows(report.ItemAggsAll)
	problemRows := make([][]any, 0, len(rows)+1)
	problemRows = append(problemRows, toAny(headers))
	for _, row := range rows {
		problemRows = append(problemRows, toAny(row))
	}
	if err := writeRows(f, problemsSheet, problemRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
