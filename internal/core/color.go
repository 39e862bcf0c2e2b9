package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the renderer.
type Color uint8

// Palette used by the board and HUD.
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
	ColorBrightCyan
	ColorOrange
	ColorGray
	ColorDim
)

// Style is a color plus emphasis for one screen cell.
type Style struct {
	Color   Color
	Bold    bool
	Reverse bool
}

// Plain returns a style with only a foreground color.
func Plain(c Color) Style {
	return Style{Color: c}
}
