package core

// Color is a foreground color index for a screen cell. Indexes map onto
// ANSI 256-color codes at the rendering layer; the simulation only ever
// compares them.
type Color uint8

// Cell colors. The arena keys its palette off these: bright cyan and
// bright red mark the two combat sides, gray is neutral terrain and
// respawn ghosts, orange and yellow are reserved for pickups and buffs.
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
