package core

import "fmt"

// Color represents a foreground color for a screen cell.
// Small values are the named ANSI palette below; values built with RGB carry
// a 24-bit colour for terminals that support it.
type Color uint32

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

const rgbFlag Color = 1 << 24

// RGB returns a true-colour Color from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return rgbFlag | Color(hex&0xFFFFFF)
}

// IsRGB reports whether c was built with RGB.
func (c Color) IsRGB() bool {
	return c&rgbFlag != 0
}

// Hex returns "#rrggbb" for RGB colours and "" for palette colours.
func (c Color) Hex() string {
	if !c.IsRGB() {
		return ""
	}
	return fmt.Sprintf("#%06x", uint32(c&0xFFFFFF))
}
