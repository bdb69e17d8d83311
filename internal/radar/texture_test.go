package radar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/sonar"
)

func rampStore(t *testing.T, steps, samples int, maxRange float64) *sonar.PingStore {
	t.Helper()
	s, err := sonar.NewPingStore(steps)
	require.NoError(t, err)
	data := make([]float64, samples)
	for i := range data {
		data[i] = float64(i) / float64(samples-1)
	}
	for b := 0; b < steps; b++ {
		require.NoError(t, s.Add(sonar.Ping{BearingIndex: b, Samples: data, MaxRangeMm: maxRange}))
	}
	return s
}

func TestTextureRenderDimensionsAndRangeAxis(t *testing.T) {
	const samples, maxRange = 100, 10000.0
	store := rampStore(t, 400, samples, maxRange)
	pal, err := palette.Named("grey")
	require.NoError(t, err)

	r := NewTextureRenderer()
	require.NoError(t, r.SetBuffer(samples, 400, false))
	require.NoError(t, r.SetSectorArea(0, maxRange, 0, 360))
	img, err := r.RenderTexture(store, pal, true)
	require.NoError(t, err)

	f := r.Frame()
	assert.Equal(t, samples, f.Width)
	assert.Equal(t, 400, f.Height)
	assert.Len(t, f.Pix, samples*400*4)
	assert.Equal(t, PixelFormatRGBA8888, f.Format)
	assert.Equal(t, 360.0, f.Geometry.AngularSpan)

	// column 0 is range 0, the last column is within one sample of max range
	assert.Equal(t, pal.Lookup(0), img.RGBAAt(0, 17))
	binWidth := maxRange / samples
	lastRange := float64(samples-1) * maxRange / samples
	assert.InDelta(t, maxRange, lastRange, binWidth)
	want, ok := store.SampleAt(17, lastRange)
	require.True(t, ok)
	assert.Equal(t, pal.Lookup(want), img.RGBAAt(samples-1, 17))
}

func TestTextureRowsFollowSectorBearings(t *testing.T) {
	store, err := sonar.NewPingStore(360)
	require.NoError(t, err)
	for b := 0; b < 360; b++ {
		require.NoError(t, store.Add(sonar.Ping{
			BearingIndex: b,
			Samples:      []float64{float64(b) / 359},
			MaxRangeMm:   100,
		}))
	}
	pal, err := palette.Named("grey")
	require.NoError(t, err)

	r := NewTextureRenderer()
	require.NoError(t, r.SetBuffer(4, 30, false))
	require.NoError(t, r.SetSectorArea(0, 100, 90, 30))
	img, err := r.RenderTexture(store, pal, false)
	require.NoError(t, err)

	for row := 0; row < 30; row++ {
		assert.Equal(t, pal.Lookup(float64(90+row)/359), img.RGBAAt(2, row), "row %d", row)
	}
}

func TestTextureSharesSamplingWithCircular(t *testing.T) {
	sim := sonar.NewSimulator(sonar.DefaultSetup(), 9)
	setup := sim.Setup()
	store, err := sonar.NewPingStore(setup.StepsPerRevolution())
	require.NoError(t, err)
	for i := 0; i < setup.StepsPerRevolution(); i++ {
		ev := sim.Next()
		require.NoError(t, store.Add(sonar.Ping{
			BearingIndex: ev.BearingIndex,
			Samples:      ev.Samples,
			MaxRangeMm:   float64(setup.MaxRangeMm),
		}))
	}
	pal := palette.Default()

	tex := NewTextureRenderer()
	cols, rows := TextureSize(setup)
	require.NoError(t, tex.SetBuffer(cols, rows, true))
	require.NoError(t, tex.SetGeometry(setup.Geometry()))
	img, err := tex.RenderTexture(store, pal, true)
	require.NoError(t, err)

	g := setup.Geometry()
	for _, cell := range [][2]int{{10, 3}, {250, 100}, {499, 399}} {
		c, row := cell[0], cell[1]
		angle := g.StartAngle + float64(row)*g.AngularSpan/float64(rows)
		rangeMm := float64(c) * g.MaxRangeMm / float64(cols)
		assert.Equal(t, shade(store, pal, angle, rangeMm, true), img.RGBAAt(c, row))
	}
}

func TestTextureDegenerateGeometry(t *testing.T) {
	store := rampStore(t, 10, 5, 100)
	r := NewTextureRenderer()
	require.NoError(t, r.SetBuffer(5, 10, false))
	before := append([]byte(nil), r.Image().Pix...)

	assert.ErrorIs(t, r.SetSectorArea(0, 0, 0, 360), ErrInvalidGeometry)
	_, err := r.RenderTexture(store, palette.Default(), true)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.Empty(t, cmp.Diff(before, r.Image().Pix))
}

func TestTextureSize(t *testing.T) {
	setup := sonar.DefaultSetup()
	cols, rows := TextureSize(setup)
	assert.Equal(t, 500, cols)
	assert.Equal(t, 400, rows)

	setup.SectorSize = sonar.DegreesToUnits(90)
	_, rows = TextureSize(setup)
	assert.Equal(t, 100, rows)
}

func TestTextureMinRangeIsBackground(t *testing.T) {
	store := rampStore(t, 4, 10, 100)
	r := NewTextureRenderer()
	require.NoError(t, r.SetBuffer(10, 4, false))
	require.NoError(t, r.SetSectorArea(30, 100, 0, 360))
	img, err := r.RenderTexture(store, palette.Default(), true)
	require.NoError(t, err)

	assert.Equal(t, DefaultBackground, img.RGBAAt(2, 0))
	assert.NotEqual(t, DefaultBackground, img.RGBAAt(9, 0))
}
