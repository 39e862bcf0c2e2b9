package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// SelectionKind says what the user picked in the menu.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectLevel
	SelectSandbox
	SelectProgress
)

// MenuSelection is the outcome of the menu.
type MenuSelection struct {
	Kind  SelectionKind
	Level levels.Level // set for SelectLevel
}

// menuItem is one row of the top-level menu.
type menuItem struct {
	title      string
	collection string // empty for the fixed entries
	kind       SelectionKind
}

// MenuModel is the Bubble Tea model for the collection and level picker.
type MenuModel struct {
	catalog   *levels.Catalog
	store     *storage.Store
	items     []menuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	theme     Theme

	levelMenu *LevelMenuModel // non-nil while picking a level
	selection MenuSelection
	quitting  bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(catalog *levels.Catalog, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []menuItem
	if catalog != nil {
		for _, col := range catalog.Collections() {
			items = append(items, menuItem{title: col.Name, collection: col.ID, kind: SelectLevel})
		}
	}
	items = append(items,
		menuItem{title: "Sandbox", kind: SelectSandbox},
		menuItem{title: "Progress", kind: SelectProgress},
	)

	return MenuModel{
		catalog:   catalog,
		store:     store,
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.levelMenu != nil {
		return m.updateLevelMenu(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

// updateLevelMenu forwards messages to the level picker.
func (m MenuModel) updateLevelMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levelMenu.Update(msg)
	lm, _ := next.(LevelMenuModel)
	m.levelMenu = &lm

	switch {
	case lm.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case lm.WantsBack():
		m.levelMenu = nil
		return m, nil
	case lm.Chosen() != nil:
		m.selection = MenuSelection{Kind: SelectLevel, Level: *lm.Chosen()}
		return m, tea.Quit
	}
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionProgress:
		m.selection = MenuSelection{Kind: SelectProgress}
		return m, tea.Quit

	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.kind != SelectLevel {
			m.selection = MenuSelection{Kind: item.kind}
			return m, tea.Quit
		}
		col, ok := m.catalog.Collection(item.collection)
		if !ok {
			return m, nil
		}
		lm := NewLevelMenuModel(col, m.solvedLevels(col.ID), m.width, m.height)
		m.levelMenu = &lm
	}

	return m, nil
}

// solvedLevels loads completion marks for a collection. Storage errors
// leave the marks empty.
func (m MenuModel) solvedLevels(collection string) map[int]bool {
	if m.store == nil {
		return nil
	}
	solved, err := m.store.CompletedLevels(collection)
	if err != nil {
		return nil
	}
	return solved
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.levelMenu != nil {
		return m.levelMenu.View()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("  C E L L S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a collection"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := cursor + item.title
		if item.kind == SelectLevel {
			line = fmt.Sprintf("%s%-20s %s", cursor, item.title, m.progressLabel(item.collection))
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Progress  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// progressLabel renders "solved/total" for a collection.
func (m MenuModel) progressLabel(collection string) string {
	total := m.catalog.LevelCount(collection)
	return fmt.Sprintf("%d/%d", len(m.solvedLevels(collection)), total)
}

// Selection returns what the user picked.
func (m MenuModel) Selection() MenuSelection {
	return m.selection
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured by
// its printed width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection MenuSelection
	Config    core.RuntimeConfig
	Quit      bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(catalog *levels.Catalog, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(catalog, store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Selection: m.Selection()}
	if m.IsQuitting() || result.Selection.Kind == SelectNone {
		result.Quit = true
	}
	return result, nil
}
