package radar

import (
	"image"

	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/sonar"
)

// TextureRenderer draws the store as a range-by-bearing grid: one row per
// bearing step in the sector, one column per output range bin. A graphics
// layer maps it onto a fan mesh using the geometry carried by Frame.
type TextureRenderer struct {
	target
}

// NewTextureRenderer creates a renderer with no buffer.
func NewTextureRenderer() *TextureRenderer {
	return &TextureRenderer{target: newTarget()}
}

// TextureSize returns the texture dimensions for a setup: one column per
// output data point and one row per bearing step inside the sector.
func TextureSize(setup sonar.Setup) (columns, rows int) {
	return setup.ImageDataPoint, setup.Geometry().StepsCovered()
}

// RenderTexture fills the grid. Row r is the bearing at
// start + r*span/rows, column c the range c*maxRange/columns.
func (r *TextureRenderer) RenderTexture(store *sonar.PingStore, pal *palette.Palette, clearBackground bool) (*image.RGBA, error) {
	if err := r.ready(store, pal); err != nil {
		return nil, err
	}

	g := r.geom
	cols, rows := r.img.Rect.Dx(), r.img.Rect.Dy()
	degPerRow := g.AngularSpan / float64(rows)
	mmPerCol := g.MaxRangeMm / float64(cols)

	for row := 0; row < rows; row++ {
		angle := g.StartAngle + float64(row)*degPerRow
		for c := 0; c < cols; c++ {
			rangeMm := float64(c) * mmPerCol
			if rangeMm < g.MinRangeMm {
				if clearBackground {
					r.set(c, row, r.Background)
				}
				continue
			}
			r.set(c, row, shade(store, pal, angle, rangeMm, r.bilinear))
		}
	}
	return r.img, nil
}
