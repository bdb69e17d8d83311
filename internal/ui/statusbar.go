package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, scanning bool, pings, revolutions, malformed int, headDeg float64, maxRangeMm int) string {
	status := ""
	if scanning {
		status = StyleStatusScanning.Render("[SCANNING]")
	} else {
		status = StyleStatusStopped.Render("[STOPPED]")
	}

	info := fmt.Sprintf(" Pings: %d  Revs: %d  Dropped: %d  Head: %ddeg  Range: 0-%.1fm",
		pings, revolutions, malformed, int(headDeg), float64(maxRangeMm)/1000)

	content := status + StyleStatusBar.Render(info)

	gap := width - 2 - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleStatusBar.Width(width).Render(content + padding)
}
