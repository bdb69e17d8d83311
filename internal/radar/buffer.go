// Package radar rasterizes a sonar PingStore into pixel buffers: a circular
// sector image for direct display and a range-by-bearing texture for GPU
// mesh mapping.
package radar

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/sonar"
)

// MaxPixels bounds a single render target.
const MaxPixels = 1 << 26

var (
	// ErrBufferResize is returned when a render target cannot be allocated.
	ErrBufferResize = errors.New("buffer resize failed")
	// ErrNoBuffer is returned when rendering before SetBuffer.
	ErrNoBuffer = errors.New("no render buffer")
	// ErrInvalidGeometry is returned for degenerate sectors.
	ErrInvalidGeometry = sonar.ErrInvalidGeometry
	// ErrNoSource is returned when rendering without a store or palette.
	ErrNoSource = errors.New("render needs a store and a palette")
)

// DefaultBackground is written outside the sector.
var DefaultBackground = color.RGBA{A: 0xff}

// PixelFormat names the byte layout of Frame.Pix.
type PixelFormat int

const (
	// PixelFormatRGBA8888 is 4 bytes per pixel, R G B A, row-major.
	PixelFormatRGBA8888 PixelFormat = iota
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA8888:
		return "RGBA8888"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Frame is a render result handed to an encoder or a texture upload. The
// Pix slice aliases the renderer's buffer until the next render.
type Frame struct {
	Width    int
	Height   int
	Stride   int
	Format   PixelFormat
	Pix      []byte
	Geometry sonar.Geometry
}

// target is the buffer and sector state shared by both renderers.
type target struct {
	img      *image.RGBA
	bilinear bool
	geom     sonar.Geometry

	// Background fills pixels outside the sector when a render clears.
	Background color.RGBA
}

func newTarget() target {
	return target{Background: DefaultBackground}
}

// SetBuffer sizes the render target and selects the interpolation mode.
// New dimensions allocate a fresh buffer; unchanged dimensions clear the
// existing one.
func (t *target) SetBuffer(width, height int, bilinear bool) error {
	if width <= 0 || height <= 0 || width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d", ErrBufferResize, width, height)
	}
	t.bilinear = bilinear
	if t.img != nil && t.img.Rect.Dx() == width && t.img.Rect.Dy() == height {
		t.fill(t.Background)
		return nil
	}
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	t.fill(t.Background)
	return nil
}

// SetBilinear switches interpolation without touching the buffer.
func (t *target) SetBilinear(bilinear bool) { t.bilinear = bilinear }

// Bilinear reports the interpolation mode.
func (t *target) Bilinear() bool { return t.bilinear }

// SetSectorArea stores the sector covered by the next render. The geometry
// is kept even when degenerate so that rendering refuses it too.
func (t *target) SetSectorArea(minRangeMm, maxRangeMm, startAngle, angularSpan float64) error {
	g := t.geom
	g.MinRangeMm = minRangeMm
	g.MaxRangeMm = maxRangeMm
	g.StartAngle = startAngle
	g.AngularSpan = angularSpan
	return t.SetGeometry(g)
}

// SetGeometry is SetSectorArea taking a whole geometry.
func (t *target) SetGeometry(g sonar.Geometry) error {
	g.StartAngle = sonar.NormalizeAngle(g.StartAngle)
	g.AngularSpan = math.Min(g.AngularSpan, 360)
	t.geom = g
	return g.Validate()
}

// Geometry returns the current sector.
func (t *target) Geometry() sonar.Geometry { return t.geom }

// Image returns the render target, nil before SetBuffer.
func (t *target) Image() *image.RGBA { return t.img }

// Frame exposes the buffer for handoff.
func (t *target) Frame() Frame {
	if t.img == nil {
		return Frame{Format: PixelFormatRGBA8888, Geometry: t.geom}
	}
	return Frame{
		Width:    t.img.Rect.Dx(),
		Height:   t.img.Rect.Dy(),
		Stride:   t.img.Stride,
		Format:   PixelFormatRGBA8888,
		Pix:      t.img.Pix,
		Geometry: t.geom,
	}
}

func (t *target) ready(store *sonar.PingStore, pal *palette.Palette) error {
	if t.img == nil {
		return ErrNoBuffer
	}
	if store == nil || pal == nil {
		return ErrNoSource
	}
	return t.geom.Validate()
}

func (t *target) fill(c color.RGBA) {
	pix := t.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (t *target) set(x, y int, c color.RGBA) {
	i := y*t.img.Stride + x*4
	pix := t.img.Pix[i : i+4 : i+4]
	pix[0] = c.R
	pix[1] = c.G
	pix[2] = c.B
	pix[3] = c.A
}
