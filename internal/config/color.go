package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// ParseColor understands the CSS forms the dot color is usually written
// in: rgba(r,g,b,a), rgb(r,g,b) and #hex (3, 4, 6 or 8 digits).
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
}

// Color returns the parsed dot color, falling back to translucent white.
func (c Config) Color() color.NRGBA {
	col, err := ParseColor(c.DotColor)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 51}
	}
	return col
}

func parseHexColor(s string) (color.NRGBA, error) {
	digits := s[1:]
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("hex color %q: want 3, 4, 6 or 8 digits", s)
	}
	if _, err := strconv.ParseUint(digits, 16, 32); err != nil {
		return color.NRGBA{}, fmt.Errorf("hex color %q: %w", s, err)
	}
	c := gg.Hex(digits)
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}, nil
}

// to8 rounds a [0,1] channel; truncation would turn 0x80 into 0x7f.
func to8(v float64) uint8 {
	return uint8(clamp(v, 0, 1)*255 + 0.5)
}

func parseFunc(body string, n int) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("color %q: want %d components, got %d", body, n, len(parts))
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color component %d: %w", i, err)
		}
		ch[i] = uint8(clamp(v, 0, 255) + 0.5)
	}
	alpha := 1.0
	if n == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("alpha: %w", err)
		}
		alpha = clamp(v, 0, 1)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: to8(alpha)}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
