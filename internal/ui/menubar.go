package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"sonar-scan.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, palette string, scanning bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"r", "un"},
		{"R", "stop"},
		{"i", "mg"},
		{"t", "ex"},
		{"p", "al"},
		{"s", "ave"},
		{"d", "ef"},
		{"+-", "rng"},
		{"[]", "sect"},
		{"b", "ilin"},
		{"c", "olor"},
		{"q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += " " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := ""
	if scanning {
		status = StyleStatusScanning.Render("SCANNING")
	} else {
		status = StyleStatusStopped.Render("STOPPED")
	}

	paletteInfo := StyleMenuLabel.Render(fmt.Sprintf("Palette: %s", palette))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + paletteInfo + " "

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleMenuBar.Width(width).Render(left + padding + right)
}
