// Package palette holds the stroke colors and the random draw used to pick one
// per stroke.
package palette

import (
	"math/rand/v2"

	"github.com/matzehuels/gridsketch/pkg/errors"
)

// Named stroke colors.
const (
	Vermilion = "#f24236"
	BlueNCS   = "#2e86ab"
	Jade      = "#04a777"
	Saffron   = "#e1bc29"
)

// Surface colors. Only the background follows the light/dark flag.
const (
	DotColor        = "#666666"
	LightBackground = "#EDEADE"
	DarkBackground  = "#212121"
)

// Palette is an ordered, non-empty list of hex colors.
type Palette []string

// Default returns the built-in four-color palette.
func Default() Palette {
	return Palette{Vermilion, BlueNCS, Jade, Saffron}
}

// Parse validates a list of hex colors. An empty list yields the default.
func Parse(colors []string) (Palette, error) {
	if len(colors) == 0 {
		return Default(), nil
	}
	p := make(Palette, len(colors))
	for i, c := range colors {
		if err := errors.ValidateHexColor(c); err != nil {
			return nil, err
		}
		p[i] = c
	}
	return p, nil
}

// Random draws a color uniformly. An empty palette falls back to the default.
func (p Palette) Random(rng *rand.Rand) string {
	if len(p) == 0 {
		return Default().Random(rng)
	}
	return p[rng.IntN(len(p))]
}

// At picks deterministically, wrapping i around the palette length.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return Default().At(i)
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Background returns the canvas fill for the given theme.
func Background(dark bool) string {
	if dark {
		return DarkBackground
	}
	return LightBackground
}
