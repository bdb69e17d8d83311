package export

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 7, A: 0xff})
		}
	}
	return img
}

func TestSaveBMPRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sonar.bmp")
	src := testImage()
	require.NoError(t, Save(path, src))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := bmp.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, src.Bounds(), got.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, _ := got.At(x, y).RGBA()
			want := src.RGBAAt(x, y)
			assert.Equal(t, [3]uint8{want.R, want.G, want.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(), ".PNG"))
	assert.Equal(t, "\x89PNG", buf.String()[:4])
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "sonar.gif"), testImage())
	assert.ErrorContains(t, err, "unsupported")
}
