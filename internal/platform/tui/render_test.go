package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-cells/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextWithColor(2, 0, "cd", core.ColorRed)
	s.DrawTextStyled(0, 1, "M>", core.Style{Color: core.ColorCyan, Bold: true})

	for _, th := range []Theme{DefaultTheme(), MonochromeTheme()} {
		out := RenderScreenWithTheme(s, th)
		lines := strings.Split(out, "\n")
		if len(lines) != 2 {
			t.Fatalf("lines = %d, want 2", len(lines))
		}
		for _, want := range []string{"ab", "cd", "M>"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q: %q", want, out)
			}
		}
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"", "default", "mono", "monochrome"} {
		if _, ok := ThemeByName(name); !ok {
			t.Errorf("ThemeByName(%q) not found", name)
		}
	}
	if _, ok := ThemeByName("neon"); ok {
		t.Error("unknown theme accepted")
	}
}

func TestMonochromeThemeCoversPalette(t *testing.T) {
	def := DefaultTheme()
	mono := MonochromeTheme()
	if len(mono.Palette) != len(def.Palette) {
		t.Errorf("palette sizes differ: %d vs %d", len(mono.Palette), len(def.Palette))
	}
}
