package ui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// HeadGlow reports how strongly the pixel at (x, y) should be tinted
// toward the head colour, in [0, 1].
type HeadGlow func(x, y int) float64

var headColor, _ = colorful.Hex(ColorHeadHex)

// RenderSonarImage converts a rendered sonar image into terminal cells.
// Each cell carries two vertically stacked pixels using an upper half
// block, so a w*h image becomes w columns by ceil(h/2) rows.
func RenderSonarImage(img *image.RGBA, glow HeadGlow) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := cellColor(img.RGBAAt(x, y), glow, x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = cellColor(img.RGBAAt(x, y+1), glow, x, y+1)
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cellColor(c color.RGBA, glow HeadGlow, x, y int) string {
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	if glow != nil {
		if g := glow(x, y); g > 0 {
			cc = cc.BlendRgb(headColor, 0.4*g)
		}
	}
	return cc.Clamped().Hex()
}

// RenderSonarPanel wraps the sonar image with a styled border and legend.
func RenderSonarPanel(width, height int, content, legend string) string {
	body := content + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(body)
}

// SonarLegend describes the range scale of the preview.
func SonarLegend(maxRangeMm int, bilinear bool) string {
	mode := "nearest"
	if bilinear {
		mode = "bilinear"
	}
	return StyleLabel.Render(" range ") + StyleValue.Render(formatMetres(maxRangeMm)) +
		StyleLabel.Render("  sampling ") + StyleValue.Render(mode)
}
