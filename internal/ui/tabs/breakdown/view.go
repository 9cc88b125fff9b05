package breakdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// View renders the breakdown tab.
func (m *Model) View() string {
	sections := []string{m.renderTitle()}

	stats, shares := m.rows()
	if len(stats) == 0 {
		sections = append(sections, styles.CardStyle.Width(m.cardWidth()).Render(
			styles.HelpStyle.Render("No data loaded. Load a file on the Data tab to compare platforms.")))
	} else {
		sections = append(sections,
			m.renderTable(stats),
			m.renderEarningsChart(stats),
			m.renderShares(stats, shares),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-8, 50)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Platform Breakdown")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%d platforms · sorted by %s", len(m.state.Derived().Platforms), m.order))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

var tableColumns = []struct {
	title string
	width int
}{
	{"Platform", 16},
	{"Jobs", 6},
	{"Earnings", 14},
	{"Avg/Job", 12},
	{"Hours", 10},
	{"Avg Hours", 10},
}

func renderCells(values []string) string {
	var b strings.Builder
	for i, c := range tableColumns {
		v := ansi.Truncate(values[i], c.width-1, "…")
		align := lipgloss.Right
		if i == 0 {
			align = lipgloss.Left
		}
		b.WriteString(lipgloss.NewStyle().Width(c.width).Align(align).Render(v))
	}
	return b.String()
}

func (m *Model) renderTable(stats []models.PlatformStats) string {
	headers := make([]string, len(tableColumns))
	for i, c := range tableColumns {
		headers[i] = c.title
	}

	lines := []string{styles.TableHeaderStyle.Render(renderCells(headers))}
	for _, s := range stats {
		lines = append(lines, renderCells([]string{
			s.Platform,
			fmt.Sprintf("%d", s.Count),
			components.FormatMoney(s.EarningsSum),
			components.FormatMoney(s.EarningsMean),
			fmt.Sprintf("%.1f", s.HoursSum),
			fmt.Sprintf("%.2f", s.HoursMean),
		}))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Statistics"),
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	))
}

func (m *Model) renderEarningsChart(stats []models.PlatformStats) string {
	items := make([]components.BarItem, len(stats))
	for i, s := range stats {
		items[i] = components.BarItem{
			Label:   s.Platform,
			Value:   s.EarningsSum.InexactFloat64(),
			Display: components.FormatMoney(s.EarningsSum),
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Total Earnings by Platform"),
		components.RenderBarChart(items, m.cardWidth()-6),
	))
}

func (m *Model) renderShares(stats []models.PlatformStats, shares []float64) string {
	lines := []string{styles.CardTitleStyle.Render("Share of Earnings")}
	for i, s := range stats {
		lines = append(lines, m.shareBar.View(shares[i], s.Platform, m.cardWidth()-6))
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
