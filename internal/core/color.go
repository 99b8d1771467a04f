package core

// Color is a foreground color for a screen cell. The platform layer maps
// it to an ANSI code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightWhite
	ColorBrown
	ColorGray
)
