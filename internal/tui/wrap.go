package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/rootdrill/internal/course"
	"github.com/verte-zerg/rootdrill/internal/model"
)

const cellGap = " "

type styledCell struct {
	s     string
	width int
}

func newCell(style lipgloss.Style, text string) styledCell {
	return styledCell{s: style.Render(text), width: runewidth.StringWidth(text)}
}

// buildRowCells styles every problem of the row by its state relative to the cursor.
func buildRowCells(row *model.Row, pool *course.Pool, missed bool) []styledCell {
	cells := make([]styledCell, 0, row.Len())
	pos := row.Position()
	for i, id := range row.IDs {
		style := pendingStyle
		switch {
		case i < pos:
			style = doneStyle
		case i == pos && missed:
			style = incorrectStyle.Underline(true)
		case i == pos:
			style = currentStyle.Underline(true)
		case row.Reinforcing[i]:
			style = reinforceStyle
		}
		cells = append(cells, newCell(style, pool.Problem(id)))
	}
	return cells
}

// buildInputCells renders the problems answered in this row followed by the pending input.
func buildInputCells(history []int, pool *course.Pool, typed string) []styledCell {
	cells := make([]styledCell, 0, len(history)+1)
	for _, id := range history {
		cells = append(cells, newCell(doneStyle, pool.Problem(id)))
	}
	tip := strings.ToUpper(typed)
	if tip == "" {
		tip = "_"
	}
	return append(cells, newCell(inputStyle, tip))
}

func renderCells(cells []styledCell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.s
	}
	return strings.Join(parts, cellGap)
}

// wrapCells breaks cells into lines no wider than width, never splitting a cell.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	gap := runewidth.StringWidth(cellGap)
	var lines []string
	var line []styledCell
	lineWidth := 0
	for _, c := range cells {
		next := c.width
		if len(line) > 0 {
			next += gap
		}
		if len(line) > 0 && lineWidth+next > width {
			lines = append(lines, renderCells(line))
			line = line[:0]
			lineWidth = 0
			next = c.width
		}
		line = append(line, c)
		lineWidth += next
	}
	lines = append(lines, renderCells(line))
	return strings.Join(lines, "\n")
}
