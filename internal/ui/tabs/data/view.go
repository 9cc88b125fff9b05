package data

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gig-worker-hub/internal/app"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// View renders the data tab.
func (m *Model) View() string {
	m.syncTable()

	sections := []string{
		m.renderTitle(),
		m.renderInput(),
	}

	if m.state.HasData() {
		sections = append(sections, m.renderSummary(), m.renderTable())
	} else {
		sections = append(sections, m.renderEmptyState())
	}

	sections = append(sections, m.renderFooter())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) cardWidth() int {
	return max(60, m.width-6)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Earnings Data")
	subtitle := styles.HelpStyle.Render(
		"Load a CSV or Excel file with date, platform, hours and earnings columns (miles optional)")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderInput() string {
	border := styles.BlurredBorderStyle
	if m.input.Focused() {
		border = styles.FocusedBorderStyle
	}

	label := styles.HelpStyle.Render("File path")
	if m.state.IsLoading(app.ResourceData) {
		label += "  " + styles.InfoTextStyle.Render("validating...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		label,
		border.Width(min(m.cardWidth(), 90)).Render(m.input.View()),
	)
}

func (m *Model) renderSummary() string {
	rs := m.state.RecordSet()
	first, last := rs.DateRange()

	daily := make([]float64, 0, rs.Len())
	for _, r := range rs.Records {
		daily = append(daily, r.Earnings.InexactFloat64())
	}

	rows := []string{
		kv("Source", rs.Source),
		kv("Records", fmt.Sprintf("%d", rs.Len())),
		kv("Range", fmt.Sprintf("%s → %s", components.FormatDate(first), components.FormatDate(last))),
		kv("Columns", strings.Join(rs.Columns, ", ")),
		kv("Daily", lipgloss.NewStyle().Foreground(styles.Money).
			Render(components.RenderSparkline(daily, max(10, m.cardWidth()-30)))),
	}
	if at := m.state.LastUpdated; !at.IsZero() {
		rows = append(rows, kv("Updated", components.FormatAgo(at)))
	}

	return lipgloss.NewStyle().MarginTop(1).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func kv(label, value string) string {
	labelStyle := lipgloss.NewStyle().Width(10).Foreground(styles.TextMuted)
	return labelStyle.Render(label+":") + " " + lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(value)
}

func (m *Model) renderTable() string {
	return styles.CardStyle.Padding(0, 1).Width(m.cardWidth()).Render(m.table.View())
}

func (m *Model) renderEmptyState() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Data Loaded"),
		styles.HelpStyle.Render("Every other tab fills in once a record set is loaded."),
		"",
		styles.InfoTextStyle.Render("Press 'o' to open a file or 's' for sample data"),
		"",
	)
	return lipgloss.NewStyle().MarginTop(1).Render(
		styles.CardStyle.Width(m.cardWidth()).Align(lipgloss.Center).Render(content))
}

func (m *Model) renderFooter() string {
	var shortcuts []string
	for _, b := range m.ShortHelp() {
		shortcuts = append(shortcuts, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(strings.Join(shortcuts, "  •  "))
}
