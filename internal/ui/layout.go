package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout stacks the settings and event panels to the right of the
// sonar panel, with the menu bar on top and the status bar at the bottom.
func ComposeLayout(menuBar, sonarPanel, settingsPanel, eventPanel, statusBar string) string {
	side := lipgloss.JoinVertical(lipgloss.Left, settingsPanel, eventPanel)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, sonarPanel, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
