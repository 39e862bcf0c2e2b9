package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
)

// LevelMenuModel is the level picker for one collection.
type LevelMenuModel struct {
	collection   levels.Collection
	solved       map[int]bool
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	chosen       *levels.Level
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates a level picker. solved marks completed level
// numbers and may be nil. The cursor starts on the first unsolved level.
func NewLevelMenuModel(col levels.Collection, solved map[int]bool, width, height int) LevelMenuModel {
	m := LevelMenuModel{
		collection: col,
		solved:     solved,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		theme:      GetTheme(),
	}
	for i, lvl := range col.Levels {
		if !solved[lvl.Number] {
			m.cursor = i
			break
		}
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.collection.Levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.collection.Levels) > 0 {
			lvl := m.collection.Levels[m.cursor]
			m.chosen = &lvl
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(strings.ToUpper(m.collection.Name)), m.width))
	b.WriteString("\n\n")

	done := 0
	for _, lvl := range m.collection.Levels {
		if m.solved[lvl.Number] {
			done++
		}
	}
	subtitle := fmt.Sprintf("Select a level (%d/%d solved)", done, len(m.collection.Levels))
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleItems(), len(m.collection.Levels))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		lvl := m.collection.Levels[i]

		cursor := "  "
		style := m.theme.MenuItemNormal
		if m.solved[lvl.Number] {
			style = m.theme.MenuItemDone
		}
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		mark := "   "
		if m.solved[lvl.Number] {
			mark = " * "
		}

		line := fmt.Sprintf("%s%2d. %-24s%s", cursor, lvl.Number, lvl.Title(), mark)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}
	if end < len(m.collection.Levels) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the picked level, or nil if none was picked yet.
func (m LevelMenuModel) Chosen() *levels.Level {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}
