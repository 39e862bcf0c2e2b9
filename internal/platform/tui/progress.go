package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// Progress screen layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the collection sidebar
	sidebarWidth       = 22  // Width of the collection sidebar
	maxCompletions     = 200 // Max completions to load
)

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
	Expand key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Expand}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit, k.Expand},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next collection"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev collection"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Expand: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ProgressModel shows solved levels per collection.
type ProgressModel struct {
	collections []levels.Collection
	colCursor   int
	store       *storage.Store
	completions []storage.Completion
	stats       *storage.CollectionStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ProgressKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewProgressModel creates a new progress model.
func NewProgressModel(catalog *levels.Catalog, store *storage.Store, width, height int) ProgressModel {
	var cols []levels.Collection
	if catalog != nil {
		cols = catalog.Collections()
	}

	h := help.New()
	h.ShowAll = false

	m := ProgressModel{
		collections: cols,
		store:       store,
		keys:        DefaultProgressKeyMap(),
		help:        h,
		theme:       GetTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.collections) > 0 {
		m.load(m.collections[0].ID)
	}
	return m
}

// createTable creates the completions table sized for the window.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Name", Width: 18},
		{Title: "Ticks", Width: 7},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 53; extra > 0 {
		columns[1].Width += min(extra, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.Highlight).
		Background(m.theme.Selected).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads completions and stats for a collection.
func (m *ProgressModel) load(collection string) {
	m.completions = nil
	m.stats = nil
	m.loadErr = nil
	if m.store != nil {
		m.completions, m.loadErr = m.store.Completions(collection, maxCompletions)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetCollectionStats(collection)
		}
	}
	m.updateTableRows()
}

// levelName looks up a level's display name in the current collection.
func (m *ProgressModel) levelName(n int) string {
	if len(m.collections) == 0 {
		return ""
	}
	col := m.collections[m.colCursor]
	if n < 1 || n > len(col.Levels) {
		return "?"
	}
	return col.Levels[n-1].Title()
}

// updateTableRows fills the table with the loaded completions.
func (m *ProgressModel) updateTableRows() {
	rows := make([]table.Row, len(m.completions))
	for i, c := range m.completions {
		rows[i] = table.Row{
			strconv.Itoa(c.Level),
			m.levelName(c.Level),
			strconv.Itoa(c.Ticks),
			c.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Expand):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if len(m.collections) > 0 {
				m.colCursor = (m.colCursor + 1) % len(m.collections)
				m.load(m.collections[m.colCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.collections) > 0 {
				m.colCursor = (m.colCursor - 1 + len(m.collections)) % len(m.collections)
				m.load(m.collections[m.colCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Highlight)
	title := "PROGRESS"
	if len(m.collections) > 0 {
		title = fmt.Sprintf("PROGRESS - %s", m.collections[m.colCursor].Name)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the aggregated stats of the current collection.
func (m ProgressModel) summary() string {
	if m.loadErr != nil {
		return "Could not load progress: " + m.loadErr.Error()
	}
	if len(m.collections) == 0 {
		return ""
	}
	total := len(m.collections[m.colCursor].Levels)
	if m.stats == nil || m.stats.Completions == 0 {
		return fmt.Sprintf("0/%d levels solved", total)
	}
	return fmt.Sprintf("%d/%d levels solved  |  %d wins  |  fewest ticks %d  |  last played %s",
		m.stats.LevelsSolved, total, m.stats.Completions, m.stats.FewestTicks,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderWideLayout renders the collection sidebar next to the table.
func (m ProgressModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Collections\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, col := range m.collections {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.colCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(m.theme.Highlight)
		}
		name := col.Name
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders collection tabs above the table.
func (m ProgressModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.collections) > 0 {
		tabStyle := lipgloss.NewStyle().Foreground(m.theme.Border)
		activeTabStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(m.theme.Highlight).
			Background(m.theme.Selected).
			Padding(0, 1)

		tabs := make([]string, len(m.collections))
		for i, col := range m.collections {
			name := col.Name
			if len(name) > 10 {
				name = name[:9] + "."
			}
			if i == m.colCursor {
				tabs[i] = activeTabStyle.Render(name)
			} else {
				tabs[i] = tabStyle.Render(" " + name + " ")
			}
		}
		tabLine := strings.Join(tabs, " ")
		if lipgloss.Width(tabLine) > m.width-4 {
			tabLine = fmt.Sprintf("< %s >", m.collections[m.colCursor].Name)
		}
		b.WriteString(centerText(tabLine, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty notice.
func (m ProgressModel) renderTableContent() string {
	if len(m.completions) == 0 {
		return m.theme.EmptyNotice.Render("No levels solved yet.\nPick a level from the menu to start!")
	}
	return m.table.View()
}

// Rows returns the table rows currently displayed.
func (m ProgressModel) Rows() []table.Row {
	return m.table.Rows()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}

// RunProgress runs the progress screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunProgress(catalog *levels.Catalog, store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewProgressModel(catalog, store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ProgressModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
