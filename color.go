package draft

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is a color with 8-bit red, green, and blue components, the color
// resolution shared by the DXF and SVG exporters.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as an uppercase "#RRGGBB" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor resolves a style color string to RGB. It accepts "#RGB" and
// "#RRGGBB" hex forms as well as CSS color names ("red", "steelblue").
// Unknown strings report ok = false; callers fall back to black.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, false
	}

	if s[0] == '#' {
		return parseHexColor(s[1:])
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, true
	}
	return RGB{}, false
}

// parseHexColor parses "RGB" or "RRGGBB" hex digits.
func parseHexColor(hex string) (RGB, bool) {
	switch len(hex) {
	case 3:
		r, ok1 := parseHexByte(hex[0:1])
		g, ok2 := parseHexByte(hex[1:2])
		b, ok3 := parseHexByte(hex[2:3])
		if !ok1 || !ok2 || !ok3 {
			return RGB{}, false
		}
		return RGB{R: r * 17, G: g * 17, B: b * 17}, true
	case 6:
		r, ok1 := parseHexByte(hex[0:2])
		g, ok2 := parseHexByte(hex[2:4])
		b, ok3 := parseHexByte(hex[4:6])
		if !ok1 || !ok2 || !ok3 {
			return RGB{}, false
		}
		return RGB{R: r, G: g, B: b}, true
	default:
		return RGB{}, false
	}
}

// parseHexByte parses one or two hex digits.
func parseHexByte(s string) (uint8, bool) {
	var val uint8
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += c - '0'
		case 'a' <= c && c <= 'f':
			val += c - 'a' + 10
		case 'A' <= c && c <= 'F':
			val += c - 'A' + 10
		default:
			return 0, false
		}
	}
	return val, true
}
