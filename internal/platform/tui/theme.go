package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cells/internal/core"
)

// Theme contains the visual styles for menus, the progress screen and the
// game screen palette.
type Theme struct {
	// Palette maps screen colors to terminal styles.
	Palette map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemDone    lipgloss.Style
	MenuDescription lipgloss.Style
	Controls        lipgloss.Style

	// Progress screen styles
	Border      lipgloss.Color
	Highlight   lipgloss.Color
	Selected    lipgloss.Color
	EmptyNotice lipgloss.Style
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultTheme returns the default 256-color theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:      lipgloss.NewStyle(),
			core.ColorRed:          fg("1"),
			core.ColorGreen:        fg("2"),
			core.ColorYellow:       fg("3"),
			core.ColorBlue:         fg("4"),
			core.ColorMagenta:      fg("5"),
			core.ColorCyan:         fg("6"),
			core.ColorWhite:        fg("7"),
			core.ColorBrightRed:    fg("9"),
			core.ColorBrightGreen:  fg("10"),
			core.ColorBrightYellow: fg("11"),
			core.ColorBrightBlue:   fg("12"),
			core.ColorBrightCyan:   fg("14"),
			core.ColorOrange:       fg("208"),
			core.ColorGray:         fg("245"),
			core.ColorDim:          fg("238"),
		},

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuItemDone:    fg("46"),
		MenuDescription: fg("245"),
		Controls:        fg("241"),

		Border:      lipgloss.Color("240"),
		Highlight:   lipgloss.Color("229"),
		Selected:    lipgloss.Color("57"),
		EmptyNotice: fg("241").Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a theme without colors, for terminals or users
// that do not want them.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	plain := lipgloss.NewStyle()
	for c := range theme.Palette {
		theme.Palette[c] = plain
	}
	theme.MenuTitle = plain.Bold(true)
	theme.MenuItemNormal = plain
	theme.MenuItemActive = plain.Bold(true).Reverse(true)
	theme.MenuItemDone = plain
	theme.MenuDescription = plain
	theme.Controls = plain
	theme.Highlight = lipgloss.Color("15")
	theme.Selected = lipgloss.Color("8")
	theme.EmptyNotice = plain.Padding(2, 4)
	return theme
}

// ThemeByName returns a named theme: "default" or "mono".
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme(), true
	case "mono", "monochrome":
		return MonochromeTheme(), true
	}
	return Theme{}, false
}

// Global theme variable (can be changed at startup)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
