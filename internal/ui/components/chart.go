// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/gig-worker-hub/internal/ui/styles"
)

// DayNames labels weekday buckets, Sunday first.
var DayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// asciigraph needs two points to draw a line.
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green),
	)
}

// BarItem is one row of a horizontal bar chart.
type BarItem struct {
	Label   string
	Value   float64
	Display string
}

// RenderBarChart creates a simple horizontal bar chart. Display is printed
// after the bar; when empty the raw value is used.
func RenderBarChart(items []BarItem, width int) string {
	if len(items) == 0 {
		return ""
	}

	maxVal := 0.0
	maxLabelLen := 0
	for _, it := range items {
		maxVal = max(maxVal, it.Value)
		maxLabelLen = max(maxLabelLen, lipgloss.Width(it.Label))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barWidth := width - maxLabelLen - 14 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	barStyle := lipgloss.NewStyle().Foreground(styles.Money)

	var lines []string
	for _, it := range items {
		barLen := int((it.Value / maxVal) * float64(barWidth))
		barLen = max(barLen, 0)

		display := it.Display
		if display == "" {
			display = fmt.Sprintf("%.1f", it.Value)
		}

		line := fmt.Sprintf("%*s │%s %s", maxLabelLen, it.Label,
			barStyle.Render(strings.Repeat("█", barLen)), display)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func sparkIndex(v, maxVal float64) int {
	idx := int((v / maxVal) * float64(len(sparkChars)-1))
	return min(max(idx, 0), len(sparkChars)-1)
}

// RenderWeeklyPattern renders one labelled spark per weekday.
func RenderWeeklyPattern(patterns []float64, dayNames []string) string {
	if len(patterns) != 7 {
		padded := make([]float64, 7)
		copy(padded, patterns)
		patterns = padded
	}
	if len(dayNames) != 7 {
		dayNames = DayNames
	}

	maxVal := 0.0
	for _, v := range patterns {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	sparkStyle := lipgloss.NewStyle().Foreground(styles.Money)

	parts := make([]string, 0, 7)
	for i, v := range patterns {
		spark := sparkStyle.Render(string(sparkChars[sparkIndex(v, maxVal)]))
		parts = append(parts, fmt.Sprintf("%s %s", dayNames[i], spark))
	}

	return strings.Join(parts, "  ")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		result.WriteRune(sparkChars[sparkIndex(values[int(float64(i)*step)], maxVal)])
	}

	return result.String()
}
