package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cells/internal/storage"
)

func TestProgressShowsCompletions(t *testing.T) {
	store := openStore(t)
	for _, c := range []storage.Completion{
		{Collection: "starter", Level: 1, Ticks: 4, Board: "1/8,5/0,0-3,4/9x1MR20x1E9x"},
		{Collection: "starter", Level: 3, Ticks: 11, Board: "1/8,5/0,0-3,4/9x1MR20x1E9x"},
		{Collection: "intermediate", Level: 1, Ticks: 20, Board: "1/8,5/0,0-3,4/9x1MR20x1E9x"},
	} {
		if _, err := store.SaveCompletion(c); err != nil {
			t.Fatalf("SaveCompletion: %v", err)
		}
	}

	m := NewProgressModel(builtinCatalog(t), store, 100, 30)
	if got := len(m.Rows()); got != 2 {
		t.Fatalf("starter rows = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "2/13 levels solved") {
		t.Errorf("summary missing:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ProgressModel)
	if got := len(m.Rows()); got != 1 {
		t.Errorf("intermediate rows = %d, want 1", got)
	}
	if m.Rows()[0][1] != "Helicopter" {
		t.Errorf("level name = %q, want Helicopter", m.Rows()[0][1])
	}
}

func TestProgressWithoutStore(t *testing.T) {
	m := NewProgressModel(builtinCatalog(t), nil, 60, 20)
	if !strings.Contains(m.View(), "No levels solved yet") {
		t.Errorf("empty notice missing:\n%s", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ProgressModel).IsGoingBack() || cmd == nil {
		t.Error("Esc did not go back")
	}
}
