// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/rootdrill/internal/course"
	"github.com/verte-zerg/rootdrill/internal/session"
	"github.com/verte-zerg/rootdrill/internal/store"
)

type screen int

const (
	screenSelect screen = iota
	screenPractice
)

var (
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	currentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	reinforceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB3B3"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	tipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	session *session.Session
	catalog *course.Catalog
	store   *store.Store

	names    []string
	selected map[string]bool
	cursor   int
	study    bool
	fast     bool
	hint     bool

	screen  screen
	active  []string
	errMsg  string
	keys    keyMap
	help    help.Model
	width   int
	height  int
	started bool
}

// NewModel constructs the practice UI. When start is set and courses are
// preselected, practice begins without showing the course selector.
func NewModel(sess *session.Session, catalog *course.Catalog, st *store.Store, start bool) *Model {
	cfg := sess.Config()
	m := &Model{
		session:  sess,
		catalog:  catalog,
		store:    st,
		names:    catalog.Names(),
		selected: map[string]bool{},
		study:    cfg.Study,
		fast:     cfg.Fast,
		hint:     cfg.Hint,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	for _, name := range cfg.Courses {
		m.selected[name] = true
	}
	if start && len(m.selectedNames()) > 0 {
		m.start()
	}
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
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.screen == screenPractice {
			return m.updatePractice(msg)
		}
		return m.updateSelector(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(m.names) > 0 {
			name := m.names[m.cursor]
			m.selected[name] = !m.selected[name]
		}
	case key.Matches(msg, m.keys.Study):
		m.study = !m.study
	case key.Matches(msg, m.keys.Fast):
		m.fast = !m.fast
	case key.Matches(msg, m.keys.Hint):
		m.hint = !m.hint
	case key.Matches(msg, m.keys.Start):
		m.start()
	}
	return m, nil
}

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.finishSession()
		return m, tea.Quit
	case tea.KeyEsc:
		m.finishSession()
		m.screen = screenSelect
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.session.Backspace()
	case tea.KeySpace:
		m.session.Type(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.session.Type(r)
		}
	}
	return m, nil
}

func (m *Model) selectedNames() []string {
	var names []string
	for _, name := range m.names {
		if m.selected[name] {
			names = append(names, name)
		}
	}
	return names
}

func (m *Model) start() {
	m.errMsg = ""
	names := m.selectedNames()
	pool, err := m.catalog.Build(names)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.session.SetFlags(m.study, m.fast, m.hint)
	if err := m.session.Load(pool); err != nil {
		if errors.Is(err, session.ErrEmptyPool) {
			m.errMsg = "select at least one course"
		} else {
			m.errMsg = err.Error()
		}
		return
	}
	m.active = names
	m.started = true
	m.screen = screenPractice
}

func (m *Model) finishSession() {
	if !m.started || m.store == nil {
		return
	}
	m.started = false
	stats, items, ok := m.session.Summary(m.active)
	if !ok {
		return
	}
	if _, err := m.store.InsertSession(context.Background(), stats, items); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, footer string
	if m.screen == screenPractice {
		content = m.practiceView()
		footer = m.renderFooter()
	} else {
		content = m.selectorView()
		footer = m.help.ShortHelpView(m.keys.selectorHelp())
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) selectorView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Courses"))
	b.WriteString("\n\n")
	for i, name := range m.names {
		mark := "[ ]"
		if m.selected[name] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, name)
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s study  %s fast  %s hint", checkbox(m.study), checkbox(m.fast), checkbox(m.hint)))
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) practiceView() string {
	pool := m.session.Pool()
	row := m.session.Row()
	width := m.contentWidth()
	lines := []string{
		titleStyle.Render(strings.Join(m.active, "、")),
		"",
		wrapCells(buildRowCells(row, pool, m.session.WrongTip() != ""), width),
		"",
		wrapCells(buildInputCells(m.session.History(), pool, m.session.Typed()), width),
	}
	if tip := m.session.WrongTip(); tip != "" {
		lines = append(lines, "", tipStyle.Render(tip))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	st := m.session.Status()
	segments := []string{
		fmt.Sprintf("Time %d min", st.Minutes),
		fmt.Sprintf("Speed %d keys/min", st.KeysPerMin),
		fmt.Sprintf("Accuracy %d%%", st.Accuracy),
		m.help.ShortHelpView(m.keys.practiceHelp()),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

