// Package data provides the data loading tab: open a file, load sample
// data, export the sample CSV and preview the active record set.
package data

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gig-worker-hub/internal/app"
	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// keyMap defines the key bindings specific to the data tab.
type keyMap struct {
	Open   key.Binding
	Submit key.Binding
	Sample key.Binding
	Export key.Binding
	Escape key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("o", "/"),
			key.WithHelp("o", "open file"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Sample: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sample data"),
		),
		Export: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write sample csv"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the data tab state.
type Model struct {
	state   *app.State
	table   table.Model
	input   textinput.Model
	keys    keyMap
	width   int
	height  int
	version int
}

// New creates a new data tab.
func New(state *app.State) *Model {
	input := textinput.New()
	input.Placeholder = "path/to/earnings.csv or .xlsx"
	input.CharLimit = 1024
	input.Width = 50
	input.Prompt = "› "

	t := table.New(
		table.WithColumns(columnsFor(false, 80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	m := &Model{
		state:   state,
		table:   t,
		input:   input,
		keys:    defaultKeyMap(),
		version: -1,
	}
	m.syncTable()
	return m
}

// Init initializes the data tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the path input has focus.
func (m *Model) CapturingInput() bool {
	return m.input.Focused()
}

// Update handles messages for the data tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if m.input.Focused() {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Open):
			return m, m.input.Focus()

		case key.Matches(msg, m.keys.Sample):
			return m, func() tea.Msg { return app.LoadSampleMsg{} }

		case key.Matches(msg, m.keys.Export):
			return m, func() tea.Msg { return app.ExportSampleMsg{} }

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case app.DataChangedMsg:
		m.syncTable()
	}

	return m, nil
}

func (m *Model) updateInput(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Submit):
			path := m.input.Value()
			m.input.Blur()
			return m, func() tea.Msg { return app.LoadFileMsg{Path: path} }

		case key.Matches(keyMsg, m.keys.Escape):
			m.input.Blur()
			return m, nil
		}
	}

	if _, ok := msg.(app.DataChangedMsg); ok {
		m.syncTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// syncTable rebuilds rows when the active set changed since the last build.
func (m *Model) syncTable() {
	if m.version == m.state.Version() {
		return
	}
	m.version = m.state.Version()

	rs := m.state.RecordSet()
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(rs != nil && rs.HasMiles, m.width))
	m.table.SetRows(rowsFor(rs))
	m.table.GotoTop()
}

func columnsFor(hasMiles bool, width int) []table.Column {
	platformWidth := max(12, min(24, width-70))
	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Platform", Width: platformWidth},
		{Title: "Hours", Width: 8},
		{Title: "Earnings", Width: 12},
	}
	if hasMiles {
		cols = append(cols, table.Column{Title: "Miles", Width: 8})
	}
	return cols
}

func rowsFor(rs *models.RecordSet) []table.Row {
	if rs.Empty() {
		return nil
	}
	rows := make([]table.Row, 0, rs.Len())
	for _, r := range rs.Records {
		row := table.Row{
			components.FormatDate(r.Date),
			r.Platform,
			strconv.FormatFloat(r.Hours, 'f', -1, 64),
			components.FormatMoney(r.Earnings),
		}
		if rs.HasMiles {
			row = append(row, fmt.Sprintf("%.1f", r.Miles))
		}
		rows = append(rows, row)
	}
	return rows
}

// SetSize sets the available size for the data tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, min(80, width-16))
	m.table.SetHeight(max(3, height-16))

	rs := m.state.RecordSet()
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(rs != nil && rs.HasMiles, width))
	m.table.SetRows(rowsFor(rs))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.input.Focused() {
		return []key.Binding{m.keys.Submit, m.keys.Escape}
	}
	return []key.Binding{m.keys.Open, m.keys.Sample, m.keys.Export}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Open, m.keys.Submit, m.keys.Escape},
		{m.keys.Sample, m.keys.Export},
	}
}
