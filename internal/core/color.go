package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the scene renderer.
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
	ColorOrange
	ColorGray
)

// Semantic aliases so renderers don't hard-code hues for game roles.
const (
	ColorPlayer    = ColorBrightCyan
	ColorExhausted = ColorGray
	ColorHint      = ColorOrange
	ColorClose     = ColorBrightRed
	ColorCorrect   = ColorBrightGreen
	ColorWrong     = ColorRed
)
