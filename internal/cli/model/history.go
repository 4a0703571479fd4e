// Package model provides Bubble Tea models for interactive CLI commands.
package model

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/cardver/internal/application/port"
	"github.com/bnema/cardver/internal/cli/styles"
	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/logging"
)

const (
	defaultTableHeight = 12
	chromeHeight       = 4
)

// HistoryKeyMap defines keybindings for the history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultHistoryKeyMap returns the default keybindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Detail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// runsLoadedMsg carries the result of loading recent runs.
type runsLoadedMsg struct {
	runs []*entity.CheckRun
	err  error
}

// HistoryModel is the Bubble Tea model for browsing recorded check runs.
type HistoryModel struct {
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	renderer *styles.HistoryRenderer
	theme    *styles.Theme

	items  []*entity.CheckRun
	detail *entity.CheckRun
	loaded bool
	err    error

	ctx   context.Context
	runs  port.CheckRunRepository
	limit int
}

// NewHistoryModel creates a new history browser model.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, runs port.CheckRunRepository, limit int) HistoryModel {
	logging.FromContext(ctx).Debug().Int("limit", limit).Msg("creating history model")

	return HistoryModel{
		table:    newRunTable(theme),
		help:     newHelp(theme),
		keys:     DefaultHistoryKeyMap(),
		renderer: styles.NewHistoryRenderer(theme),
		theme:    theme,
		ctx:      ctx,
		runs:     runs,
		limit:    limit,
	}
}

func newRunTable(theme *styles.Theme) table.Model {
	headers := styles.HistoryHeaders()
	widths := []int{10, 10, 20, 10, 10, 13, 12}
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.Foreground(theme.Text)
	t.SetStyles(s)
	return t
}

func newHelp(theme *styles.Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = theme.Subtle
	return h
}

// Init loads the recent runs.
func (m HistoryModel) Init() tea.Cmd {
	return m.load
}

func (m HistoryModel) load() tea.Msg {
	runs, err := m.runs.GetRecent(m.ctx, m.limit)
	return runsLoadedMsg{runs: runs, err: err}
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		m.items = msg.runs
		rows := make([]table.Row, 0, len(msg.runs))
		for _, run := range msg.runs {
			rows = append(rows, table.Row(styles.HistoryRow(run)))
		}
		m.table.SetRows(rows)
		return m, nil

	case tea.WindowSizeMsg:
		if h := msg.Height - chromeHeight; h > 0 {
			m.table.SetHeight(h)
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.detail = nil
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			if m.detail == nil && len(m.items) > 0 {
				m.detail = m.items[m.table.Cursor()]
			}
			return m, nil
		}
	}

	if m.detail != nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the run whose details are shown, if any.
func (m HistoryModel) Selected() *entity.CheckRun {
	return m.detail
}

// View renders the model.
func (m HistoryModel) View() string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(m.theme.ErrorStyle.Render("Error: " + m.err.Error()))
	case !m.loaded:
		b.WriteString(m.theme.Subtle.Render("Loading check history..."))
	case len(m.items) == 0:
		b.WriteString(m.theme.Subtle.Render("No check runs recorded yet."))
	case m.detail != nil:
		b.WriteString(m.renderer.RenderRun(m.detail))
	default:
		b.WriteString(m.table.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
