package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Event severities.
const (
	LevelInfo = iota
	LevelWarn
	LevelError
)

// Event is one line of the event log.
type Event struct {
	Time  string
	Level int
	Text  string
}

// RenderEventLog renders the newest events that fit in the panel.
func RenderEventLog(events []Event, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	visible := height - 4
	if visible < 1 {
		visible = 1
	}

	lines := []string{
		StylePanelTitle.Render("EVENTS"),
		StyleRule.Render(strings.Repeat("-", innerW)),
	}

	start := 0
	if len(events) > visible {
		start = len(events) - visible
	}
	for _, e := range events[start:] {
		text := e.Time + " " + e.Text
		if lipgloss.Width(text) > innerW {
			text = truncate(text, innerW)
		}
		switch e.Level {
		case LevelError:
			lines = append(lines, StyleEventError.Render(text))
		case LevelWarn:
			lines = append(lines, StyleEventWarn.Render(text))
		default:
			lines = append(lines, StyleLabel.Render(text))
		}
	}
	if len(events) == 0 {
		lines = append(lines, StyleHelp.Render("press [r] to start scanning"))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
