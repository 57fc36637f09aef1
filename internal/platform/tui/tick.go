// Package tui runs the game in a terminal through Bubble Tea, locally or per
// SSH session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Gen is the scheduler
// generation the tick was armed under.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
