package radar

import (
	"math"

	"sonar-scan.klederson.com/internal/sonar"
)

// OffsetAngle computes the angle of a pixel offset from the sector origin.
// Returns degrees in [0, 360), where 0=up, increasing clockwise.
func OffsetAngle(dx, dy float64) float64 {
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	return sonar.NormalizeAngle(deg)
}

// InSector reports whether angle lies in [start, start+span). A span of a
// full turn or more accepts every angle.
func InSector(angle, start, span float64) bool {
	if span >= 360 {
		return true
	}
	return sonar.NormalizeAngle(angle-start) < span
}

// layout places the sector origin in pixel space.
type layout struct {
	ox, oy  float64 // origin, pixels
	pxPerMm float64
}

// fitSector scales the wedge described by g so its bounding box fills a
// w x h buffer, centered on the spare axis. A full circle puts the origin
// at the buffer center.
func fitSector(g sonar.Geometry, w, h int) layout {
	minX, maxX, minY, maxY := -1.0, 1.0, -1.0, 1.0
	if !g.FullCircle() {
		minX, maxX, minY, maxY = 0, 0, 0, 0
		grow := func(deg float64) {
			rad := deg * math.Pi / 180
			x, y := math.Sin(rad), -math.Cos(rad)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		grow(g.StartAngle)
		grow(g.StartAngle + g.AngularSpan)
		for _, cardinal := range []float64{0, 90, 180, 270} {
			if InSector(cardinal, g.StartAngle, g.AngularSpan) {
				grow(cardinal)
			}
		}
	}

	bw, bh := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if bw > 1e-9 {
		scale = float64(w) / bw
	}
	if bh > 1e-9 {
		scale = math.Min(scale, float64(h)/bh)
	}
	if math.IsInf(scale, 1) {
		scale = math.Min(float64(w), float64(h))
	}

	return layout{
		ox:      float64(w)/2 - scale*(minX+maxX)/2,
		oy:      float64(h)/2 - scale*(minY+maxY)/2,
		pxPerMm: scale / g.MaxRangeMm,
	}
}

// polar converts pixel (x, y) to range in mm and angle in degrees.
func (l layout) polar(x, y int) (rangeMm, angle float64) {
	dx := float64(x) - l.ox
	dy := float64(y) - l.oy
	return math.Hypot(dx, dy) / l.pxPerMm, OffsetAngle(dx, dy)
}
