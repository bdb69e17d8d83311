// Package export writes rendered buffers to image files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Encode writes img to w in the format named by ext (".bmp" or ".png").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".bmp":
		return bmp.Encode(w, img)
	case ".png":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
}

// Save writes img to path, choosing the encoder from the extension and
// creating parent directories as needed.
func Save(path string, img image.Image) (err error) {
	if img == nil {
		return fmt.Errorf("nothing to save to %s", path)
	}
	ext := filepath.Ext(path)
	if ext != ".bmp" && ext != ".png" {
		return fmt.Errorf("unsupported image format %q", ext)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(f, img, ext); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
