// Package tui provides the Bubble Tea front end for cells: the game runner,
// the level menus, the progress screen and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game frame.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after one frame at the
// given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
