// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/stats"
	"github.com/verte-zerg/rootdrill/internal/store"
)

const (
	tabOverview = iota
	tabProblems
	tabRecent
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    [2]table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Problems", "Recent"},
		overview: viewport.New(0, 0),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabOverview {
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
		idx := m.activeTab - tabProblems
		m.tables[idx], cmd = m.tables[idx].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	var body string
	switch {
	case m.errMsg != "":
		body = errorStyle.Render(m.errMsg)
	case m.activeTab == tabOverview:
		body = m.overview.View()
	default:
		body = m.tables[m.activeTab-tabProblems].View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		fitLines(body, m.width, bodyHeight),
		footer,
	)
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	for i := range m.tables {
		if i+tabProblems == m.activeTab {
			m.tables[i].Focus()
		} else {
			m.tables[i].Blur()
		}
	}
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if i == m.activeTab {
			tabs[i] = activeNavStyle.Render(name)
		} else {
			tabs[i] = inactiveNavStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), headerStyle.Render(m.renderFilterSummary()))
}

func (m *Model) renderFilterSummary() string {
	parts := []string{}
	if m.cfg.Course != "" {
		parts = append(parts, "course="+m.cfg.Course)
	}
	if m.cfg.Since != nil {
		parts = append(parts, "since="+m.cfg.Since.Format("2006-01-02"))
	}
	if m.cfg.Last > 0 {
		parts = append(parts, fmt.Sprintf("last=%d", m.cfg.Last))
	}
	parts = append(parts, fmt.Sprintf("window=%d", m.cfg.CurveWindow))
	parts = append(parts, fmt.Sprintf("sessions=%d", len(m.report.Sessions)))
	return strings.Join(parts, "  ")
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("←/→ tabs  ↑/↓ scroll  =/- curve window  q quit")
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyHeight := max(1, m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter()))
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for i := range m.tables {
		m.tables[i].SetWidth(m.width)
		m.tables[i].SetHeight(bodyHeight)
	}
	m.renderTabContents()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load stats: %v", err)
		m.report = stats.Report{}
	} else {
		m.errMsg = ""
		m.report = report
	}
	m.tables[0] = buildItemTable(m.report.ItemAggsAll)
	m.tables[1] = buildItemTable(m.report.ItemAggsWindow)
	m.moveTab(0)
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report.Sessions, m.cfg.CurveWindow, width))
}

func renderOverview(sessions []model.SessionAggregate, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, sessions); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	if err := stats.RenderCurves(&buf, sessions, window, width); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildItemTable(aggs []model.ItemAggregate) table.Model {
	headers, rows := stats.ItemRows(aggs)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := lipgloss.Width(h)
		for _, row := range rows {
			width = max(width, lipgloss.Width(row[i]))
		}
		columns[i] = table.Column{Title: h, Width: width}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
	)
	t.SetStyles(itemTableStyles())
	return t
}

func itemTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#5A4A1E")).
		Bold(false)
	return styles
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
