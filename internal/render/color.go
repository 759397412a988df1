package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor reads "#RRGGBB", "#RGB" or "#RRGGBBAA". An empty string is
// fully transparent.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// fade parses s, falling back to black, and scales its alpha.
func fade(s string, alpha float64) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		c = color.NRGBA{A: 0xff}
	}
	alpha = min(max(alpha, 0), 1)
	c.A = uint8(float64(c.A) * alpha)
	return c
}
