package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestCompassDir(t *testing.T) {
	cases := map[float64]string{
		0:    "N",
		44:   "NE",
		90:   "E",
		180:  "S",
		270:  "W",
		359:  "N",
		-45:  "NW",
		22.4: "N",
	}
	for deg, want := range cases {
		assert.Equal(t, want, CompassDir(deg), "deg %v", deg)
	}
}

func TestRenderCompassSize(t *testing.T) {
	assert.Empty(t, RenderCompass(5, 3, 0, 0, 360))

	out := RenderCompass(21, 9, 90, 0, 90)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 9)
	for _, l := range lines {
		assert.Equal(t, 21, lipgloss.Width(l))
	}
	assert.Contains(t, out, "N")
	assert.Contains(t, out, ">")
}

func TestRenderSonarImageHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 5))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	out := RenderSonarImage(img, nil)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 4, strings.Count(l, "▀"))
	}

	assert.Empty(t, RenderSonarImage(nil, nil))
}

func TestCellColorGlow(t *testing.T) {
	black := color.RGBA{A: 0xff}
	assert.Equal(t, "#000000", cellColor(black, nil, 0, 0))
	assert.Equal(t, "#000000", cellColor(black, func(int, int) float64 { return 0 }, 0, 0))
	assert.NotEqual(t, "#000000", cellColor(black, func(int, int) float64 { return 1 }, 0, 0))
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, renderSparkline(nil, 10))
	assert.Equal(t, "_^", renderSparkline([]float64{0, 1}, 10))
	assert.Equal(t, "__", renderSparkline([]float64{0.5, 0.5}, 10))
	// only the newest values that fit
	assert.Equal(t, "_^", renderSparkline([]float64{1, 1, 0, 1}, 2))
}

func TestRenderLevelBar(t *testing.T) {
	bar := renderLevelBar(0.5, 10)
	assert.Equal(t, 12, lipgloss.Width(bar))
	assert.Equal(t, 5, strings.Count(bar, "|"))
	assert.Equal(t, 10, strings.Count(renderLevelBar(7, 10), "|"))
}

func TestRenderSettingsPanel(t *testing.T) {
	out := RenderSettingsPanel(SettingsView{
		SessionID:   "abcd1234",
		MaxRangeMm:  20000,
		SectorSize:  360,
		StepSize:    32,
		Steps:       400,
		DataPoints:  500,
		HeadDeg:     91,
		LastPeak:    0.5,
		PeakHistory: []float64{0.1, 0.5},
	}, 40, 40)
	assert.Contains(t, out, "abcd1234")
	assert.Contains(t, out, "20.00m")
	assert.Contains(t, out, "32 (400/rev)")
	assert.Contains(t, out, "91.0° E")
	assert.Equal(t, 40, lipgloss.Height(out))
}

func TestRenderEventLogShowsNewest(t *testing.T) {
	var events []Event
	for i := 0; i < 20; i++ {
		events = append(events, Event{Time: "00:00:00", Text: string(rune('a' + i))})
	}
	events[19].Level = LevelError

	out := RenderEventLog(events, 30, 8)
	assert.Contains(t, out, "00:00:00 t")
	assert.NotContains(t, out, "00:00:00 a")
	assert.Equal(t, 8, lipgloss.Height(out))

	assert.Contains(t, RenderEventLog(nil, 40, 8), "press [r]")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}

func TestBarsFillWidth(t *testing.T) {
	menu := RenderMenuBar(160, "default", true)
	assert.Equal(t, 160, lipgloss.Width(menu))
	assert.Equal(t, 1, lipgloss.Height(menu))
	status := RenderStatusBar(100, false, 1, 2, 3, 45, 20000)
	assert.Equal(t, 100, lipgloss.Width(status))
	assert.Equal(t, 1, lipgloss.Height(status))
}

func TestRenderPaletteStrip(t *testing.T) {
	assert.Empty(t, renderPaletteStrip(nil))
	assert.Equal(t, 3, strings.Count(renderPaletteStrip([]string{"#000000", "#808080", "#ffffff"}), "█"))

	out := RenderSettingsPanel(SettingsView{PaletteStrip: []string{"#000000", "#ffffff"}}, 40, 40)
	assert.Contains(t, out, "Scale")
}
