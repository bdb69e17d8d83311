package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

var builtins = map[string][]Stop{
	"default": {
		{0, rgb(0x00, 0x00, 0x00)},
		{0.25, rgb(0x00, 0x1e, 0x6e)},
		{0.5, rgb(0x00, 0xa0, 0xc8)},
		{0.75, rgb(0xf0, 0xdc, 0x00)},
		{1, rgb(0xff, 0xff, 0xff)},
	},
	"grey": {
		{0, rgb(0x00, 0x00, 0x00)},
		{1, rgb(0xff, 0xff, 0xff)},
	},
	"thermal": {
		{0, rgb(0x00, 0x00, 0x00)},
		{0.3, rgb(0x80, 0x00, 0x80)},
		{0.6, rgb(0xff, 0x40, 0x00)},
		{0.85, rgb(0xff, 0xc0, 0x00)},
		{1, rgb(0xff, 0xff, 0xe0)},
	},
}

// Default returns the standard sonar palette.
func Default() *Palette {
	p, _ := Named("default")
	return p
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Named returns a built-in palette by name.
func Named(name string) (*Palette, error) {
	stops, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return New(stops...)
}
