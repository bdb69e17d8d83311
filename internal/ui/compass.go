package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sonar-scan.klederson.com/internal/radar"
	"sonar-scan.klederson.com/internal/sonar"
)

// RenderCompass draws a head-bearing compass: a ring, the edges of the
// scanned sector and a needle toward the current transducer heading.
// All angles are degrees, 0 = north, clockwise.
func RenderCompass(width, height int, headDeg, sectorStart, sectorSpan float64) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	kind := make([][]cellKind, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		kind[i] = make([]cellKind, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3)
	ry := math.Max(fcy-2.0, 2)

	put := func(col, row int, ch byte, k cellKind) {
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = ch
			kind[row][col] = k
		}
	}

	// Ring, brighter inside the scanned sector
	const steps = 96
	for i := 0; i < steps; i++ {
		deg := float64(i) * 360 / steps
		col := int(math.Round(fcx + rx*math.Sin(deg*math.Pi/180)))
		row := int(math.Round(fcy - ry*math.Cos(deg*math.Pi/180)))
		k := cellRing
		if radar.InSector(deg, sectorStart, sectorSpan) {
			k = cellSector
		}
		put(col, row, ringChar(deg), k)
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))
	put(cx, cy-int(math.Round(ry))-1, 'N', cellMark)
	put(cx, cy+int(math.Round(ry))+1, 'S', cellMark)
	put(cx+int(math.Round(rx))+1, cy, 'E', cellMark)
	put(cx-int(math.Round(rx))-1, cy, 'W', cellMark)

	// Sector edges, unless the sector is a full circle
	if sectorSpan < 360 {
		for _, edge := range []float64{sectorStart, sectorStart + sectorSpan} {
			drawRay(put, fcx, fcy, rx, ry, edge, 0.9, cellEdge)
		}
	}

	// Needle toward the head
	tipCol, tipRow := drawRay(put, fcx, fcy, rx, ry, headDeg, 0.8, cellNeedle)
	put(tipCol, tipRow, arrowTip(headDeg), cellNeedle)
	put(cx, cy, '+', cellMark)

	needleSty := lipgloss.NewStyle().Foreground(ColorHead).Bold(true)
	sectorSty := lipgloss.NewStyle().Foreground(ColorBright)
	ringSty := lipgloss.NewStyle().Foreground(ColorDim)
	edgeSty := lipgloss.NewStyle().Foreground(ColorFaint)
	markSty := lipgloss.NewStyle().Foreground(ColorMid).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := string(grid[row][col])
			switch kind[row][col] {
			case cellNeedle:
				sb.WriteString(needleSty.Render(ch))
			case cellMark:
				sb.WriteString(markSty.Render(ch))
			case cellSector:
				sb.WriteString(sectorSty.Render(ch))
			case cellEdge:
				sb.WriteString(edgeSty.Render(ch))
			case cellRing:
				sb.WriteString(ringSty.Render(ch))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellRing
	cellSector
	cellEdge
	cellMark
	cellNeedle
)

// drawRay steps from the center toward deg and returns the last cell drawn.
func drawRay(put func(col, row int, ch byte, k cellKind), fcx, fcy, rx, ry, deg, frac float64, k cellKind) (int, int) {
	sinA := math.Sin(deg * math.Pi / 180)
	cosA := math.Cos(deg * math.Pi / 180)
	n := int(math.Max(rx, ry) * frac)
	if n < 2 {
		n = 2
	}
	col, row := int(math.Round(fcx)), int(math.Round(fcy))
	for s := 1; s <= n; s++ {
		t := float64(s) / float64(n) * frac
		col = int(math.Round(fcx + t*rx*sinA))
		row = int(math.Round(fcy - t*ry*cosA))
		put(col, row, shaftChar(deg), k)
	}
	return col, row
}

func octant(deg float64) int {
	return int(math.Round(sonar.NormalizeAngle(deg)/45)) % 8
}

func ringChar(deg float64) byte {
	return "-\\|/-\\|/"[octant(deg)]
}

// shaftChar returns the line character for a direction.
func shaftChar(deg float64) byte {
	return "|\\-/|\\-/"[octant(deg)]
}

func arrowTip(deg float64) byte {
	return "^/>\\v/<\\"[octant(deg)]
}

// CompassDir names the nearest of the eight compass points.
func CompassDir(deg float64) string {
	return [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}[octant(deg)]
}
