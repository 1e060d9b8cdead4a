package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Gray returns the opaque gray (i, i, i, 255).
func Gray(i uint8) Color {
	return Color{i, i, i, 255}
}

// modulate scales the RGB channels of c by intensity/255.
func modulate(c Color, intensity uint8) Color {
	scale := func(v uint8) uint8 {
		return uint8(uint32(v) * uint32(intensity) / 255)
	}
	return Color{scale(c.R), scale(c.G), scale(c.B), 255}
}

// ParseColor parses "r,g,b" or "r,g,b,a" with 0-255 components.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: expected r,g,b or r,g,b,a", s)
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, nil
}
