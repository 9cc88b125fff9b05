package advisor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	gen "github.com/j-veylop/gig-worker-hub/internal/advisor"
	"github.com/j-veylop/gig-worker-hub/internal/app"
	"github.com/j-veylop/gig-worker-hub/internal/session"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// View renders the advisor tab.
func (m *Model) View() string {
	m.refresh()

	border := styles.BlurredBorderStyle
	if m.input.Focused() {
		border = styles.FocusedBorderStyle
	}

	status := styles.HelpStyle.Render("g: report · i: ask · x: clear chat")
	if m.state.IsLoading(app.ResourceAdvisor) {
		status = styles.InfoTextStyle.Render("Waiting for the advisor...")
	} else if !m.hasAdvisor {
		status = styles.WarningTextStyle.Render("No advisory model configured")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		border.Width(max(20, m.width-10)).Render(m.input.View()),
		status,
	)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) textWidth() int {
	return max(20, m.viewport.Width-4)
}

// refresh rebuilds the scrollable content from state.
func (m *Model) refresh() {
	sections := []string{
		styles.TitleStyle.Render("Advisor"),
		m.renderRecommendations(),
		m.renderTranscript(),
	}
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderRecommendations() string {
	title := styles.CardTitleStyle.Render("Recommendations")

	text, at := m.state.Recommendations()
	var body string
	switch {
	case text == "" && !m.state.HasData():
		body = styles.HelpStyle.Render("Load earnings data, then press 'g' for a personalised report.")
	case text == "":
		body = styles.HelpStyle.Render("Press 'g' to generate a performance report for the loaded data.")
	case gen.IsFailure(text):
		body = styles.ErrorTextStyle.Render(gen.Render(text, m.textWidth()))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			gen.Render(text, m.textWidth()),
			"",
			styles.TimestampStyle.Render("generated "+components.FormatAgo(at)),
		)
	}

	return styles.CardStyle.Width(max(20, m.viewport.Width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m *Model) renderTranscript() string {
	msgs := m.state.Transcript()
	lines := []string{styles.CardTitleStyle.Render("Chat")}

	if len(msgs) == 0 {
		lines = append(lines, styles.HelpStyle.Render("Ask anything about your gig work. The advisor does not see your data in chat."))
		return strings.Join(lines, "\n")
	}

	for _, msg := range msgs {
		lines = append(lines, m.renderMessage(msg), "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderMessage(msg session.Message) string {
	header := styles.UserMessageStyle.Render("You")
	if msg.Role == session.RoleAssistant {
		header = styles.AssistantMessageStyle.Render("Advisor")
	}
	header += " " + styles.TimestampStyle.Render(msg.At.Format("15:04"))

	body := gen.Render(msg.Content, m.textWidth())
	if msg.IsError {
		body = styles.ErrorTextStyle.Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.NewStyle().PaddingLeft(2).Render(body))
}
