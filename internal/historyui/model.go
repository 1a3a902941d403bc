// Package historyui provides the Bubble Tea history browser.
package historyui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keydrill/internal/model"
	"keydrill/internal/stats"
	"keydrill/internal/store"
)

const chartHeight = 10

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store  *store.Store
	filter model.HistoryFilter

	results []model.Results
	errMsg  string

	table      table.Model
	viewport   viewport.Model
	focusChart bool

	width  int
	height int
}

// NewModel constructs a history UI model and loads past results.
func NewModel(st *store.Store, filter model.HistoryFilter) *Model {
	m := &Model{
		store:    st,
		filter:   filter,
		viewport: viewport.New(0, 0),
	}
	m.loadResults()
	m.initTable()
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
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.focusChart = !m.focusChart
			if m.focusChart {
				m.table.Blur()
			} else {
				m.table.Focus()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.focusChart {
				m.viewport, cmd = m.viewport.Update(msg)
			} else {
				m.table, cmd = m.table.Update(msg)
			}
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := headerStyle.Render(fmt.Sprintf("Previous results (%d)", len(m.results)))
	footer := footerStyle.Render("tab: switch focus · q: quit")
	sections := []string{header}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, m.table.View(), m.viewport.View(), footer)
	return strings.Join(sections, "\n")
}

func (m *Model) loadResults() {
	results, err := m.store.ListResults(context.Background(), m.filter)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load results: %v", err)
		return
	}
	m.results = results
}

func (m *Model) initTable() {
	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "WPM", Width: 8},
		{Title: "Raw acc", Width: 8},
		{Title: "Accuracy", Width: 8},
		{Title: "Duration", Width: 8},
		{Title: "Completed", Width: 9},
	}

	// Newest first in the table; the chart keeps chronological order.
	rows := make([]table.Row, 0, len(m.results))
	for i := len(m.results) - 1; i >= 0; i-- {
		r := m.results[i]
		completed := "yes"
		if !r.Completed {
			completed = "no"
		}
		rows = append(rows, table.Row{
			r.FinishedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.2f", r.Stats.WPM),
			fmt.Sprintf("%.2f%%", r.Stats.RawAccuracy),
			fmt.Sprintf("%.2f%%", r.Stats.Accuracy),
			fmt.Sprintf("%ds", r.DurationSecs),
			completed,
		})
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
	)
}

func (m *Model) updateLayout() {
	tableHeight := m.height - chartHeight - 7
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetHeight(tableHeight)
	m.table.SetWidth(m.width)

	m.viewport.Width = m.width
	m.viewport.Height = chartHeight + 3
	m.viewport.SetContent(chartStyle.Render(stats.BarChart(m.results, m.width, chartHeight)))
}
