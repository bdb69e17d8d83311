package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SettingsView is what the settings panel displays.
type SettingsView struct {
	SessionID    string
	MaxRangeMm   int
	SectorStart  float64 // degrees
	SectorSize   float64 // degrees
	StepSize     int
	Steps        int
	DataPoints   int
	BlankingMm   int
	HeadDeg      float64
	LastPeak     float64   // strongest echo of the last ping, 0..1
	PeakHistory  []float64 // oldest first
	PaletteName  string
	PaletteStrip []string // "#rrggbb" colors, low to high
	OutputFolder string
}

// RenderSettingsPanel renders the sonar settings, echo strength and the
// head compass.
func RenderSettingsPanel(v SettingsView, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	lines := []string{
		StylePanelTitle.Render("SONAR"),
		StyleRule.Render(strings.Repeat("-", innerW)),
	}

	fields := []struct{ label, value string }{
		{"Session", v.SessionID},
		{"Range", formatMetres(v.MaxRangeMm)},
		{"Sector", fmt.Sprintf("%.0f° +%.0f°", v.SectorStart, v.SectorSize)},
		{"Step", fmt.Sprintf("%d (%d/rev)", v.StepSize, v.Steps)},
		{"Points", fmt.Sprintf("%d", v.DataPoints)},
		{"Blanking", formatMetres(v.BlankingMm)},
		{"Head", fmt.Sprintf("%.1f° %s", v.HeadDeg, CompassDir(v.HeadDeg))},
		{"Palette", v.PaletteName},
		{"Output", v.OutputFolder},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-9s", f.label))+StyleValue.Render(f.value))
	}
	if strip := renderPaletteStrip(v.PaletteStrip); strip != "" {
		lines = append(lines, StyleLabel.Render("  Scale    ")+strip)
	}
	lines = append(lines, "")

	barWidth := innerW - 18
	if barWidth < 10 {
		barWidth = 10
	}
	lines = append(lines, StyleLabel.Render("  Echo     ")+renderLevelBar(v.LastPeak, barWidth)+
		StyleValue.Render(fmt.Sprintf(" %3.0f%%", v.LastPeak*100)))

	if len(v.PeakHistory) > 0 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorMid).Render(renderSparkline(v.PeakHistory, sparkW)))
	}
	lines = append(lines, "")

	compassH := height - len(lines) - 3
	if compassH < 5 {
		compassH = 5
	}
	compassW := innerW
	if compassW > compassH*3 {
		compassW = compassH * 3
	}
	if compass := RenderCompass(compassW, compassH, v.HeadDeg, v.SectorStart, v.SectorSize); compass != "" {
		prefix := strings.Repeat(" ", max(0, (innerW-compassW)/2))
		for _, cl := range strings.Split(compass, "\n") {
			lines = append(lines, prefix+cl)
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}

	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderPaletteStrip draws one block per color.
func renderPaletteStrip(colors []string) string {
	var sb strings.Builder
	for _, c := range colors {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("█"))
	}
	return sb.String()
}

// renderLevelBar draws a ratio in [0, 1] as a filled bar.
func renderLevelBar(ratio float64, width int) string {
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(ColorBright).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDim).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng < 1e-6 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}

func formatMetres(mm int) string {
	return fmt.Sprintf("%.2fm", float64(mm)/1000)
}
