package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// ShareBar renders a platform's share of total earnings.
type ShareBar struct {
	progress progress.Model
}

// NewShareBar creates a share bar with a gradient fill.
func NewShareBar() ShareBar {
	return ShareBar{
		progress: progress.New(
			progress.WithScaledGradient("#5A56E0", "#04B575"),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// View renders label, bar and percentage. share is a fraction in [0, 1].
func (s ShareBar) View(share float64, label string, width int) string {
	share = min(max(share, 0), 1)

	barWidth := width - 30 // Reserve space for label and percentage
	if barWidth < 10 {
		barWidth = 10
	}
	s.progress.Width = barWidth

	percent := share * 100
	percentStr := styles.GetShareStyle(percent).
		Width(7).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", percent))

	labelStr := styles.ProgressLabelStyle.Width(15).Render(label)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		s.progress.ViewAs(share),
		" ",
		percentStr,
	)
}
