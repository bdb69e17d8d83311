package ui

import "github.com/charmbracelet/lipgloss"

// Sonar console palette
var (
	ColorBright      = lipgloss.Color("#00E5FF")
	ColorMid         = lipgloss.Color("#00A0C8")
	ColorDim         = lipgloss.Color("#005A78")
	ColorFaint       = lipgloss.Color("#002A3A")
	ColorBorderNorm  = lipgloss.Color("#0088AA")
	ColorBorderHot   = lipgloss.Color("#00E5FF")
	ColorHead        = lipgloss.Color("#F0DC00")
	ColorError       = lipgloss.Color("#FF3300")
	ColorWarning     = lipgloss.Color("#FFAA00")
	ColorBarBg       = lipgloss.Color("#001A24")
	ColorHeadHex     = "#f0dc00"
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorBarBg).
			Foreground(ColorBright).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorBright).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorMid)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorBarBg).
			Foreground(ColorMid).
			Padding(0, 1)

	StyleStatusScanning = lipgloss.NewStyle().
				Foreground(ColorBright).
				Bold(true)

	StyleStatusStopped = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderHot)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorBright).
			Bold(true).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMid)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorBright).
			Bold(true)

	StyleRule = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleEventWarn = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleEventError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)
