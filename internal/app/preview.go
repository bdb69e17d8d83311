package app

import (
	"sonar-scan.klederson.com/internal/radar"
	"sonar-scan.klederson.com/internal/sonar"
)

// preview is the terminal-sized sector renderer. The session keeps its
// geometry in step with the head settings.
type preview struct {
	*radar.CircularRenderer
}

func newPreview() *preview {
	p := &preview{CircularRenderer: radar.NewCircularRenderer()}
	p.SetBilinear(true)
	return p
}

func (p *preview) Reconfigure(setup sonar.Setup) error {
	return p.SetGeometry(setup.Geometry())
}

// resize fits the buffer to a panel of cols x rows terminal cells, two
// pixels per cell vertically.
func (p *preview) resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return nil
	}
	if img := p.Image(); img != nil && img.Rect.Dx() == cols && img.Rect.Dy() == rows*2 {
		return nil
	}
	return p.SetBuffer(cols, rows*2, p.Bilinear())
}
