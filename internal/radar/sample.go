package radar

import (
	"image/color"

	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/sonar"
)

// shade is the one sampling path both renderers use: blended store lookup
// at a polar position, mapped through the palette. Missing data maps to
// the palette's NoData color.
func shade(store *sonar.PingStore, pal *palette.Palette, angleDeg, rangeMm float64, bilinear bool) color.RGBA {
	v, _ := store.NeighborBearingBlend(angleDeg, rangeMm, bilinear)
	return pal.Lookup(v)
}
