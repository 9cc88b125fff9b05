// Package advisor provides the recommendations and chat tab.
package advisor

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gig-worker-hub/internal/app"
)

const inputHeight = 5

// keyMap defines the key bindings specific to the advisor tab.
type keyMap struct {
	Generate key.Binding
	Ask      key.Binding
	Send     key.Binding
	Cancel   key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate report"),
		),
		Ask: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "ask a question"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear chat"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the advisor tab state.
type Model struct {
	state      *app.State
	hasAdvisor bool
	keys       keyMap
	input      textinput.Model
	viewport   viewport.Model
	width      int
	height     int
}

// New creates a new advisor tab. hasAdvisor is false when no model
// credentials are configured; requests are then still sent and fail with a
// visible error.
func New(state *app.State, hasAdvisor bool) *Model {
	input := textinput.New()
	input.Placeholder = "Ask about your earnings, e.g. which platform pays best per hour?"
	input.CharLimit = 500
	input.Prompt = "› "

	m := &Model{
		state:      state,
		hasAdvisor: hasAdvisor,
		keys:       defaultKeyMap(),
		input:      input,
		viewport:   viewport.New(0, 0),
	}
	return m
}

// Init initializes the advisor tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the question input has focus.
func (m *Model) CapturingInput() bool {
	return m.input.Focused()
}

// Update handles messages for the advisor tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)

	case app.RecommendationsMsg, app.DataChangedMsg:
		m.refresh()
		m.viewport.GotoTop()

	case app.AskQuestionMsg, app.AnswerMsg, app.ClearChatMsg:
		m.refresh()
		m.viewport.GotoBottom()
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Generate):
		return m, func() tea.Msg { return app.RequestRecommendationsMsg{} }

	case key.Matches(msg, m.keys.Ask):
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		return m, func() tea.Msg { return app.ClearChatMsg{} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		question := m.input.Value()
		if question == "" || m.state.IsLoading(app.ResourceAdvisor) {
			return m, nil
		}
		m.input.Reset()
		return m, func() tea.Msg { return app.AskQuestionMsg{Question: question} }

	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SetSize sets the available size for the advisor tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, width-14)
	m.viewport.Width = max(0, width-6)
	m.viewport.Height = max(0, height-inputHeight-2)
	m.refresh()
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.input.Focused() {
		return []key.Binding{m.keys.Send, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Generate, m.keys.Ask, m.keys.Clear}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Generate, m.keys.Ask, m.keys.Clear},
		{m.keys.Send, m.keys.Cancel},
		{m.keys.Up, m.keys.Down},
	}
}
