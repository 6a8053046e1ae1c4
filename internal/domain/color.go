package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FillAlpha is the fixed opacity applied to every scatter point.
const FillAlpha = 200

// RGB is a parsed point color. The map layer renders it with FillAlpha
// appended; the tooltip glyph uses the original hex string.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Fill returns the RGBA quad handed to the scatter layer, e.g.
// #FFA500 → [255 165 0 200].
func (c RGB) Fill() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, FillAlpha}
}

// Hex formats the color back to "#RRGGBB" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses a 6-hex-digit RGB string, with or without the
// leading '#'. Shorthand forms and alpha channels are rejected.
func ParseHexColor(s string) (RGB, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 {
		return RGB{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(raw[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Radius computes a point's on-map radius from its event count and the
// user-chosen size control: eventCount × size / 5.
func Radius(eventCount float64, size int) float64 {
	return eventCount * float64(size) / 5
}
