package info

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
	"github.com/j-veylop/gig-worker-hub/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderJournalCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, advisor journal and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	} else {
		c := m.config
		apiKey := styles.ErrorTextStyle.Render("not set")
		if c.APIKey != "" {
			apiKey = styles.SuccessTextStyle.Render("set")
		}
		rows = append(rows,
			m.renderConfigRow("Model", c.ModelID),
			m.renderConfigRow("Endpoint", c.URL),
			m.renderConfigRow("Project ID", m.projectID()),
			m.renderConfigRow("API Key", apiKey),
			m.renderConfigRow("Advisor Timeout", c.AdvisorTimeout.String()),
			"",
			m.renderConfigRow("Database", c.DatabasePath),
			m.renderConfigRow("Log File", c.LogPath),
			m.renderConfigRow("Sample Export", c.SampleExportPath),
			m.renderConfigRow("Watch Data File", onOff(c.WatchDataFile)),
			m.renderConfigRow("Desktop Notify", onOff(c.DesktopNotify)),
		)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// projectID returns the configured project id, masked unless revealed.
func (m *Model) projectID() string {
	id := m.config.ProjectID
	switch {
	case id == "":
		return styles.ErrorTextStyle.Render("not set")
	case m.revealIDs || len(id) <= 4:
		return id
	default:
		return strings.Repeat("•", len(id)-4) + id[len(id)-4:]
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderJournalCard renders the advisor journal statistics.
func (m *Model) renderJournalCard() string {
	rows := []string{styles.CardTitleStyle.Render("Journal"), ""}

	stats := m.state.JournalStats()
	if stats == nil {
		rows = append(rows, styles.HelpStyle.Render("No journal statistics yet"))
	} else {
		failed := fmt.Sprintf("%d", stats.FailedCalls)
		if stats.FailedCalls > 0 {
			failed = styles.WarningTextStyle.Render(failed)
		}
		rows = append(rows,
			m.renderConfigRow("Advisor Calls", fmt.Sprintf("%d", stats.AdvisoryCalls)),
			m.renderConfigRow("Failed Calls", failed),
			m.renderConfigRow("Avg Latency", fmt.Sprintf("%.0f ms", stats.AvgDurationMs)),
			m.renderConfigRow("Last Call", components.FormatAgo(stats.LastCall)),
			m.renderConfigRow("Data Loads", fmt.Sprintf("%d (%d failed)", stats.DataLoads, stats.FailedLoads)),
		)
	}

	if recent := m.state.RecentAdvisoryCalls(); len(recent) > 0 {
		rows = append(rows, "", styles.SubTitleStyle.Render("Recent calls"))
		for _, call := range recent {
			rows = append(rows, renderCall(call))
		}
	}

	rows = append(rows, "", m.renderConfigRow("Session", m.state.Session().ID()))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderCall renders one journaled advisory call on a single line.
func renderCall(call models.AdvisoryCall) string {
	line := fmt.Sprintf("%-16s %-15s %6d ms", call.Timestamp.Format("2006-01-02 15:04"), call.Kind, call.DurationMs)
	if call.Error != "" {
		return styles.ErrorTextStyle.Render(line + "  failed")
	}
	return styles.HelpStyle.Render(line)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Gig Worker Hub"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
