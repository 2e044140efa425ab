package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"guardrail/internal/check"
	"guardrail/internal/config"
)

// resultMsg carries a finished check run back into the update loop.
type resultMsg struct {
	result *check.Result
	err    error
}

// DashboardModel is the interactive diagnostics view: a findings table
// that re-runs the checkers on demand.
type DashboardModel struct {
	root   string
	cfg    *config.Config
	engine *check.Engine

	table      table.Model
	result     *check.Result
	err        error
	refreshing bool
	width      int
	height     int

	styles Styles
}

// NewDashboard creates the dashboard for a project.
func NewDashboard(root string, cfg *config.Config) DashboardModel {
	t := table.New(
		table.WithColumns(diagnosticColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return DashboardModel{
		root:   root,
		cfg:    cfg,
		engine: check.NewEngine(root, cfg),
		table:  t,
		styles: DefaultStyles(),
	}
}

func diagnosticColumns(width int) []table.Column {
	// File column absorbs whatever width the fixed columns leave over.
	file := width - 6 - 10 - 16 - 40
	if file < 20 {
		file = 20
	}
	return []table.Column{
		{Title: "File", Width: file},
		{Title: "Line", Width: 6},
		{Title: "Severity", Width: 10},
		{Title: "Checker", Width: 16},
		{Title: "Message", Width: 40},
	}
}

// Init triggers the first check run.
func (m DashboardModel) Init() tea.Cmd {
	return m.refresh()
}

func (m DashboardModel) refresh() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		result, err := engine.Run(ctx)
		return resultMsg{result: result, err: err}
	}
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.refreshing {
				m.refreshing = true
				return m, m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(diagnosticColumns(msg.Width - 4))
		if msg.Height > 10 {
			m.table.SetHeight(msg.Height - 8)
		}

	case resultMsg:
		m.refreshing = false
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
			m.table.SetRows(diagnosticRows(msg.result))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func diagnosticRows(result *check.Result) []table.Row {
	rows := make([]table.Row, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		rows = append(rows, table.Row{
			d.File,
			fmt.Sprintf("%d", d.Line),
			string(d.Severity),
			d.Checker,
			d.Message,
		})
	}
	return rows
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("guardrail diagnostics"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Summary.Render(m.summaryLine()))
	sb.WriteString("\n\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("r refresh - q quit"))
	return sb.String()
}

func (m DashboardModel) summaryLine() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render("check failed: " + m.err.Error())
	case m.refreshing && m.result == nil:
		return m.styles.Muted.Render("running checks...")
	case m.result == nil:
		return m.styles.Muted.Render("no results yet")
	}

	line := fmt.Sprintf("%d files  %s  %s",
		m.result.FilesChecked,
		m.styles.Error.Render(fmt.Sprintf("%d errors", m.result.Errors)),
		m.styles.Warning.Render(fmt.Sprintf("%d warnings", m.result.Warnings)))
	if m.refreshing {
		line += m.styles.Muted.Render("  (refreshing)")
	}
	return line
}
