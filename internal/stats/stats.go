// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/rootdrill/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	curveLabelWidth     = 10
)

// SessionMetrics computes correct answers per minute and accuracy for a session.
func SessionMetrics(pressed, correct int, durationMs int64) (kpm, accuracy float64) {
	if pressed > 0 {
		accuracy = float64(correct) / float64(pressed)
	}
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	kpm = float64(correct) / minutes
	return kpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(min(i+1, window))
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the width of the terminal on stdout, or 80.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalKPM, totalAcc, bestKPM float64
	var totalMs int64
	for _, s := range sessions {
		kpm, acc := SessionMetrics(s.Pressed, s.Correct, s.DurationMs)
		totalKPM += kpm
		totalAcc += acc
		bestKPM = math.Max(bestKPM, kpm)
		totalMs += s.DurationMs
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Practice time: %d min", totalMs/60000),
		fmt.Sprintf("Avg speed: %.1f keys/min", totalKPM/count),
		fmt.Sprintf("Best speed: %.1f keys/min", bestKPM),
		fmt.Sprintf("Avg accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints speed and accuracy sparklines fitted to width.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	speeds := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		kpm, acc := SessionMetrics(s.Pressed, s.Correct, s.DurationMs)
		speeds[i] = kpm
		accs[i] = acc * 100
	}
	speeds = MovingAverage(speeds, window)
	accs = MovingAverage(accs, window)
	if width > 0 {
		speeds = lastN(speeds, width-curveLabelWidth)
		accs = lastN(accs, width-curveLabelWidth)
	}

	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s%s\n", curveLabelWidth, "Speed", Sparkline(speeds)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s%s\n\n", curveLabelWidth, "Accuracy", Sparkline(accs)); err != nil {
		return err
	}
	return nil
}

func lastN(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// ItemRows formats per-problem aggregates as table rows, slowest first.
func ItemRows(aggs []model.ItemAggregate) (headers []string, rows [][]string) {
	headers = []string{"Problem", "Answer", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	for _, agg := range SlowestItems(aggs, 0) {
		rows = append(rows, []string{
			agg.Problem,
			strings.ToUpper(agg.Answer),
			fmt.Sprintf("%.2f%%", itemAccuracy(agg)*100),
			fmt.Sprintf("%.1f", averageLatency(agg)),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	return headers, rows
}

// RenderItemTable prints per-problem aggregates.
func RenderItemTable(w io.Writer, aggs []model.ItemAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No problem stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Problem"); err != nil {
		return err
	}
	headers, rows := ItemRows(aggs)
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
