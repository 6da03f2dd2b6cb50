package render

import (
	"fmt"
	"image/color"
	"math"
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
	ColorGray  = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Hex creates a color from a 0xRRGGBB value.
func Hex(v uint32) color.RGBA {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// ParseRGB parses an "R,G,B" triple such as "46,46,46".
func ParseRGB(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("color %q: want R,G,B", s)
	}
	var c [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		c[i] = uint8(v)
	}
	return RGB(c[0], c[1], c[2]), nil
}

// FormatRGB is the inverse of ParseRGB.
func FormatRGB(c Color) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// MultiplyColor multiplies a color by a scalar intensity, clamped to [0, 1].
func MultiplyColor(c Color, intensity float64) Color {
	intensity = math.Max(0, math.Min(1, intensity))
	return RGB(
		uint8(float64(c.R)*intensity),
		uint8(float64(c.G)*intensity),
		uint8(float64(c.B)*intensity),
	)
}
