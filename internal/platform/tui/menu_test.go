package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
)

func builtinCatalog(t *testing.T) *levels.Catalog {
	t.Helper()
	cat, err := levels.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	return cat
}

func sendKeys(m tea.Model, msgs ...tea.KeyMsg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuSelectsLevel(t *testing.T) {
	m := NewMenuModel(builtinCatalog(t), nil, core.DefaultConfig())

	out := sendKeys(m, keyEnter, keyDown, keyEnter).(MenuModel)
	sel := out.Selection()
	if sel.Kind != SelectLevel {
		t.Fatalf("Kind = %v, want SelectLevel", sel.Kind)
	}
	if sel.Level.Collection != "starter" || sel.Level.Number != 2 {
		t.Errorf("level = %s/%d, want starter/2", sel.Level.Collection, sel.Level.Number)
	}
}

func TestMenuFixedEntries(t *testing.T) {
	cat := builtinCatalog(t)
	n := len(cat.Collections())

	tests := []struct {
		name  string
		downs int
		want  SelectionKind
	}{
		{"sandbox", n, SelectSandbox},
		{"progress", n + 1, SelectProgress},
		{"past the end", n + 5, SelectProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewMenuModel(cat, nil, core.DefaultConfig())
			for range tt.downs {
				m = sendKeys(m, keyDown)
			}
			m = sendKeys(m, keyEnter)
			if got := m.(MenuModel).Selection().Kind; got != tt.want {
				t.Errorf("Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMenuBackFromLevels(t *testing.T) {
	m := NewMenuModel(builtinCatalog(t), nil, core.DefaultConfig())

	out := sendKeys(m, keyEnter, keyEsc).(MenuModel)
	if out.IsQuitting() {
		t.Fatal("Esc in the level list quit the menu")
	}
	if out.levelMenu != nil {
		t.Fatal("still in the level list")
	}
	if !strings.Contains(out.View(), "Select a collection") {
		t.Error("collection list not shown")
	}

	out = sendKeys(out, keyEsc).(MenuModel)
	if !out.IsQuitting() {
		t.Error("Esc on the collection list should quit")
	}
}

func TestLevelMenuStartsAtFirstUnsolved(t *testing.T) {
	col, ok := builtinCatalog(t).Collection("starter")
	if !ok {
		t.Fatal("starter collection missing")
	}
	lm := NewLevelMenuModel(col, map[int]bool{1: true, 2: true}, 80, 24)
	lm = sendKeys(lm, keyEnter).(LevelMenuModel)
	if lm.Chosen() == nil || lm.Chosen().Number != 3 {
		t.Fatalf("Chosen = %+v, want level 3", lm.Chosen())
	}
	if !strings.Contains(lm.View(), "2/13 solved") {
		t.Errorf("view missing solved count:\n%s", lm.View())
	}
}

func TestLevelMenuScrolls(t *testing.T) {
	col, _ := builtinCatalog(t).Collection("starter")
	var m tea.Model = NewLevelMenuModel(col, nil, 80, 14)
	for range 12 {
		m = sendKeys(m, keyDown)
	}
	lm := m.(LevelMenuModel)
	if lm.cursor != 12 {
		t.Fatalf("cursor = %d, want 12", lm.cursor)
	}
	view := lm.View()
	if !strings.Contains(view, "more above") {
		t.Error("missing scroll indicator")
	}
	if !strings.Contains(view, "13.") {
		t.Error("last level not visible")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText overflow = %q", got)
	}
}
