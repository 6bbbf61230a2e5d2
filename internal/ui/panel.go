package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OK and Fail print one status line. Fail is meant for stderr.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(current.SymFail+" "+msg))
}

// Box frames content with the theme border.
func Box(content string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(content)
}

// Panel prints lines inside a framed box.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, Box(strings.Join(lines, "\n")))
}

// ShareBar renders a bar for percent (clamped to 0..100) followed by the
// percentage itself.
func ShareBar(percent, width int) string {
	if width < 5 {
		width = 5
	}
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
