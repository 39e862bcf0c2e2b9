package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cells/internal/core"
)

// styleFor resolves a screen style against the palette.
func styleFor(t Theme, st core.Style) lipgloss.Style {
	style, ok := t.Palette[st.Color]
	if !ok {
		style = t.Palette[core.ColorDefault]
	}
	if st.Bold {
		style = style.Bold(true)
	}
	if st.Reverse {
		style = style.Reverse(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style are rendered as one run.
func RenderScreen(s *core.Screen) string {
	return RenderScreenWithTheme(s, GetTheme())
}

// RenderScreenWithTheme is RenderScreen with an explicit theme.
func RenderScreenWithTheme(s *core.Screen, t Theme) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Style

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Style != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (core.Style{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(t, start).Render(run.String()))
		}
	}
	return sb.String()
}
