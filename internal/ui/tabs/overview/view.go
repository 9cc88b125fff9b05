package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/j-veylop/gig-worker-hub/internal/analytics"
	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	var sections []string
	sections = append(sections, m.renderTitle())

	if !m.state.HasData() {
		sections = append(sections, m.renderEmptyState())
	} else {
		d := m.state.Derived()
		sections = append(sections,
			m.renderMetrics(d.Summary),
			m.renderWeekly(d.Weekly),
			m.renderWeekdays(d.Weekdays),
			m.renderProjection(d.Projection),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-8, 40)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Overview")
	subtitle := styles.HelpStyle.Render("Headline figures for the loaded earnings")
	if rs := m.state.RecordSet(); rs != nil {
		first, last := rs.DateRange()
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("%s · %s → %s",
			rs.Source, components.FormatDate(first), components.FormatDate(last)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmptyState() string {
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle.Render("No data loaded."),
		styles.InfoTextStyle.Render("╰─▶ Open a file or load sample data on the Data tab"),
	))
}

func metric(label, value, note string) string {
	lines := []string{
		styles.MetricLabelStyle.Render(label),
		styles.MetricValueStyle.Render(value),
	}
	if note != "" {
		lines = append(lines, styles.WarningTextStyle.Render(note))
	}
	return styles.MetricCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderMetrics(s models.Summary) string {
	rateNote := ""
	if s.RateGuarded {
		rateNote = "under 1 h logged"
	}

	cards := []string{
		metric("Total Earnings", components.FormatMoney(s.TotalEarnings), ""),
		metric("Hourly Rate", components.FormatMoney(s.HourlyRate)+"/h", rateNote),
		metric("Hours", components.FormatHours(s.TotalHours), ""),
		metric("Jobs", fmt.Sprintf("%d", s.Jobs), ""),
	}
	if s.HasMiles {
		mileNote := ""
		if s.MileGuarded {
			mileNote = "under 1 mi logged"
		}
		cards = append(cards,
			metric("Per Mile", components.FormatMoney(s.EarningsPerMile)+"/mi", mileNote))
	}

	return lipgloss.NewStyle().MarginBottom(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (m *Model) renderWeekly(weeks []models.WeeklyTotal) string {
	values := lo.Map(weeks, func(w models.WeeklyTotal, _ int) float64 {
		return w.Earnings.InexactFloat64()
	})

	caption := "Weekly earnings"
	if len(weeks) > 0 {
		caption = fmt.Sprintf("Weekly earnings, weeks ending %s to %s",
			components.FormatDate(weeks[0].WeekEnding),
			components.FormatDate(weeks[len(weeks)-1].WeekEnding))
	}

	chart := components.RenderLineChart(values, m.cardWidth()-16, 8, caption)

	best := lo.MaxBy(weeks, func(a, b models.WeeklyTotal) bool {
		return a.Earnings.GreaterThan(b.Earnings)
	})
	footer := ""
	if len(weeks) > 0 {
		footer = styles.HelpStyle.Render(fmt.Sprintf("%d weeks · best week ending %s: %s",
			len(weeks), components.FormatDate(best.WeekEnding), components.FormatMoney(best.Earnings)))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Weekly Trend"),
		chart,
		"",
		footer,
	))
}

func (m *Model) renderWeekdays(days [7]models.WeekdayTotal) string {
	values := make([]float64, 7)
	for i, d := range days {
		values[i] = d.Earnings.InexactFloat64()
	}

	best := days[0]
	for _, d := range days[1:] {
		if d.Earnings.GreaterThan(best.Earnings) {
			best = d
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Weekday Pattern"),
		components.RenderWeeklyPattern(values, components.DayNames),
		"",
		styles.HelpStyle.Render(fmt.Sprintf("Strongest day: %s (%s over %d days)",
			best.Day, components.FormatMoney(best.Earnings), best.Days)),
	))
}

func (m *Model) renderProjection(p models.Projection) string {
	rows := []string{styles.CardTitleStyle.Render(fmt.Sprintf("%d-Day Projection", p.Days))}

	if !p.HasEnoughData {
		rows = append(rows, styles.WarningTextStyle.Render(fmt.Sprintf(
			"Need at least %d active days for a projection (have %d)",
			analytics.MinActiveDays, p.ActiveDays)))
	} else {
		rows = append(rows,
			fmt.Sprintf("%s %s",
				styles.MetricLabelStyle.Render("Projected:"),
				styles.MetricValueStyle.Render(components.FormatMoney(p.Projected))),
			styles.HelpStyle.Render(fmt.Sprintf("%s per active day across %d active days",
				components.FormatMoney(p.DailyAverage), p.ActiveDays)),
		)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
