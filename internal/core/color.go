package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Palette. The platform maps each to an ANSI 256 code.
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
	ColorOrange
	ColorGray
	ColorDarkGreen
	ColorBrown
	ColorDarkRed
	ColorSteel
)

var colorNames = map[string]Color{
	"red":        ColorRed,
	"green":      ColorGreen,
	"lightgreen": ColorBrightGreen,
	"darkgreen":  ColorDarkGreen,
	"yellow":     ColorYellow,
	"gold":       ColorBrightYellow,
	"blue":       ColorBlue,
	"blue-grey":  ColorSteel,
	"white":      ColorWhite,
	"silver":     ColorWhite,
	"grey":       ColorGray,
	"gray":       ColorGray,
	"orange":     ColorOrange,
	"brown":      ColorBrown,
	"darkred":    ColorDarkRed,
	"magenta":    ColorMagenta,
	"cyan":       ColorCyan,
}

// ColorByName maps a catalog color name to the palette. Unknown names get
// the default color.
func ColorByName(name string) Color {
	if c, ok := colorNames[name]; ok {
		return c
	}
	return ColorDefault
}
