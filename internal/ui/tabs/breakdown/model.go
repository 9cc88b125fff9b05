// Package breakdown provides the per-platform statistics tab.
package breakdown

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gig-worker-hub/internal/analytics"
	"github.com/j-veylop/gig-worker-hub/internal/app"
	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
)

// sortOrder selects how platform rows are ordered.
type sortOrder int

const (
	sortByName sortOrder = iota
	sortByEarnings
)

func (s sortOrder) String() string {
	if s == sortByEarnings {
		return "earnings"
	}
	return "name"
}

// keyMap defines the key bindings specific to the breakdown tab.
type keyMap struct {
	ToggleSort key.Binding
	Up         key.Binding
	Down       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sort"),
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

// Model represents the breakdown tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model
	shareBar components.ShareBar
	order    sortOrder
	width    int
	height   int
}

// New creates a new breakdown tab.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		shareBar: components.NewShareBar(),
	}
}

// Init initializes the breakdown tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the breakdown tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.ToggleSort) {
			m.order = (m.order + 1) % 2
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// rows returns the platform statistics with their shares, in display order.
func (m *Model) rows() ([]models.PlatformStats, []float64) {
	stats := append([]models.PlatformStats(nil), m.state.Derived().Platforms...)
	if m.order == sortByEarnings {
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].EarningsSum.GreaterThan(stats[j].EarningsSum)
		})
	}
	return stats, analytics.Share(stats)
}

// SetSize sets the available size for the breakdown tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(0, width-6)
	m.viewport.Height = max(0, height-2)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleSort}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.ToggleSort}, {m.keys.Up, m.keys.Down}}
}
