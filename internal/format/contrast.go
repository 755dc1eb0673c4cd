// Package format holds the pure display transformations shared by every
// view: badge contrast, timestamps, file sizes and country flags.
package format

import "strconv"

// Foreground colours returned by Contrast.
const (
	ForegroundDark  = "#000000"
	ForegroundLight = "#ffffff"
)

// luminanceThreshold separates light backgrounds from dark ones.
const luminanceThreshold = 0.5

// Contrast returns the foreground colour that stays legible on bg, a
// "#RRGGBB" string. Anything unparseable gets the dark foreground.
func Contrast(bg string) string {
	r, g, b, ok := ParseHex(bg)
	if !ok {
		return ForegroundDark
	}
	if Luminance(r, g, b) > luminanceThreshold {
		return ForegroundDark
	}
	return ForegroundLight
}

// Luminance is the perceived brightness of an RGB colour in [0, 1].
func Luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// ParseHex parses "#RRGGBB". ok is false for any other shape.
func ParseHex(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// ValidHex reports whether s is a "#RRGGBB" colour.
func ValidHex(s string) bool {
	_, _, _, ok := ParseHex(s)
	return ok
}
