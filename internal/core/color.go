package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

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
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Faded returns the color used for a cell whose opacity dropped below half.
func (c Color) Faded() Color {
	switch c {
	case ColorBrightRed, ColorRed:
		return ColorRed
	case ColorBrightYellow, ColorYellow, ColorOrange:
		return ColorYellow
	case ColorBrightCyan, ColorCyan:
		return ColorCyan
	default:
		return ColorGray
	}
}
