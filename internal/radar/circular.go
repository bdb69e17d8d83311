package radar

import (
	"image"

	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/sonar"
)

// CircularRenderer draws the store as the physical acoustic wedge.
type CircularRenderer struct {
	target
}

// NewCircularRenderer creates a renderer with no buffer. Call SetBuffer and
// SetSectorArea before Render.
func NewCircularRenderer() *CircularRenderer {
	return &CircularRenderer{target: newTarget()}
}

// Render rasterizes store into the buffer. Pixels outside the sector are
// set to Background when clearBackground is true and left as they were
// otherwise. On error the buffer is untouched.
func (r *CircularRenderer) Render(store *sonar.PingStore, pal *palette.Palette, clearBackground bool) (*image.RGBA, error) {
	if err := r.ready(store, pal); err != nil {
		return nil, err
	}

	g := r.geom
	w, h := r.img.Rect.Dx(), r.img.Rect.Dy()
	l := fitSector(g, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rangeMm, angle := l.polar(x, y)
			if rangeMm > g.MaxRangeMm || rangeMm < g.MinRangeMm || !InSector(angle, g.StartAngle, g.AngularSpan) {
				if clearBackground {
					r.set(x, y, r.Background)
				}
				continue
			}
			r.set(x, y, shade(store, pal, angle, rangeMm, r.bilinear))
		}
	}
	return r.img, nil
}

// PixelToPolar maps a buffer pixel to sector coordinates. ok is false when
// the pixel lies outside the sector or no buffer is set.
func (r *CircularRenderer) PixelToPolar(x, y int) (rangeMm, angle float64, ok bool) {
	if r.img == nil || r.geom.Validate() != nil {
		return 0, 0, false
	}
	g := r.geom
	l := fitSector(g, r.img.Rect.Dx(), r.img.Rect.Dy())
	rangeMm, angle = l.polar(x, y)
	ok = rangeMm <= g.MaxRangeMm && rangeMm >= g.MinRangeMm && InSector(angle, g.StartAngle, g.AngularSpan)
	return rangeMm, angle, ok
}
