// Package palette maps normalized sonar intensities to colors through an
// ordered table of color stops.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidPalette is returned when a stop table cannot be interpolated.
	ErrInvalidPalette = errors.New("invalid palette")
	// ErrInvalidSize is returned for swatches with non-positive dimensions.
	ErrInvalidSize = errors.New("invalid swatch size")
)

// Stop is one entry of a palette: a color pinned at a position in [0, 1].
type Stop struct {
	Pos   float64
	Color color.RGBA
}

// Palette is an immutable, validated list of stops.
type Palette struct {
	stops []Stop
	// blend endpoints in colorful space, one per stop
	cols []colorful.Color
}

// New validates the stops and builds a palette. At least two stops are
// required, the first at 0 and the last at 1, with strictly increasing
// positions.
func New(stops ...Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidPalette, len(stops))
	}
	if stops[0].Pos != 0 {
		return nil, fmt.Errorf("%w: first stop at %g, want 0", ErrInvalidPalette, stops[0].Pos)
	}
	if last := stops[len(stops)-1].Pos; last != 1 {
		return nil, fmt.Errorf("%w: last stop at %g, want 1", ErrInvalidPalette, last)
	}
	for i := 1; i < len(stops); i++ {
		if !(stops[i].Pos > stops[i-1].Pos) {
			return nil, fmt.Errorf("%w: stop %d at %g does not follow %g", ErrInvalidPalette, i, stops[i].Pos, stops[i-1].Pos)
		}
	}

	p := &Palette{
		stops: make([]Stop, len(stops)),
		cols:  make([]colorful.Color, len(stops)),
	}
	copy(p.stops, stops)
	for i, s := range p.stops {
		p.cols[i] = colorful.Color{
			R: float64(s.Color.R) / 255,
			G: float64(s.Color.G) / 255,
			B: float64(s.Color.B) / 255,
		}
	}
	return p, nil
}

// Stops returns a copy of the stop table.
func (p *Palette) Stops() []Stop {
	out := make([]Stop, len(p.stops))
	copy(out, p.stops)
	return out
}

// Lookup returns the color for v. Values outside [0, 1] are clamped and NaN
// is treated as 0.
func (p *Palette) Lookup(v float64) color.RGBA {
	v = clamp01(v)

	// first stop with Pos >= v
	idx := sort.Search(len(p.stops), func(i int) bool {
		return p.stops[i].Pos >= v
	})
	if idx == 0 {
		return p.stops[0].Color
	}
	if idx >= len(p.stops) {
		return p.stops[len(p.stops)-1].Color
	}

	lo, hi := p.stops[idx-1], p.stops[idx]
	t := (v - lo.Pos) / (hi.Pos - lo.Pos)
	if t >= 1 {
		return hi.Color
	}

	r, g, b := p.cols[idx-1].BlendRgb(p.cols[idx], t).RGB255()
	a := float64(lo.Color.A) + t*(float64(hi.Color.A)-float64(lo.Color.A))
	return color.RGBA{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

// Hex returns the color for v as "#rrggbb", the form lipgloss expects.
func (p *Palette) Hex(v float64) string {
	c := p.Lookup(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderSwatch allocates a width x height image and fills it with the
// palette gradient.
func (p *Palette) RenderSwatch(width, height int, vertical bool) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	p.DrawSwatch(img, vertical)
	return img, nil
}

// DrawSwatch sweeps the full [0, 1] domain across dst. A vertical swatch
// runs from 1 at the top row to 0 at the bottom row; a horizontal one from
// 0 at the left column to 1 at the right.
func (p *Palette) DrawSwatch(dst *image.RGBA, vertical bool) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	if vertical {
		for y := 0; y < h; y++ {
			c := p.Lookup(1 - axisValue(y, h))
			for x := 0; x < w; x++ {
				dst.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
			}
		}
		return
	}

	for x := 0; x < w; x++ {
		c := p.Lookup(axisValue(x, w))
		for y := 0; y < h; y++ {
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

// axisValue maps i in [0, n) onto [0, 1] with both ends reached.
func axisValue(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
