package advisor

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const bullet = "• "

// Render prepares generated text for the terminal: escape sequences and
// control characters are removed, "- " list items become bullets and lines
// are word-wrapped to width. A width below one disables wrapping.
func Render(text string, width int) string {
	clean := ansi.Strip(text)
	clean = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, clean)

	lines := strings.Split(clean, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "- ") {
			indent := line[:len(line)-len(trimmed)]
			line = indent + bullet + strings.TrimPrefix(trimmed, "- ")
		}
		if width > 0 {
			line = ansi.Wordwrap(line, width, "")
		}
		lines[i] = line
	}

	return strings.Join(lines, "\n")
}
