package scene

import (
	"fmt"
	"math"
)

// Palette saturation and value are kept high for vibrant, distinct colors.
const (
	paletteSaturation = 0.7
	paletteValue      = 0.9
)

// Palette generates n distinct hex colors with evenly spaced hues in HSV
// space. The same n always yields the same palette.
func Palette(n int) []string {
	colors := make([]string, n)
	for i := range n {
		hue := float64(i) / float64(n)
		r, g, b := hsvToRGB(hue, paletteSaturation, paletteValue)
		colors[i] = fmt.Sprintf("#%02x%02x%02x",
			int(math.Round(r*255)), int(math.Round(g*255)), int(math.Round(b*255)))
	}
	return colors
}

// hsvToRGB converts HSV (all components in [0,1]) to RGB in [0,1].
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	if s == 0 {
		return v, v, v
	}
	h = math.Mod(h, 1) * 6
	sector := int(h)
	f := h - float64(sector)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch sector % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
