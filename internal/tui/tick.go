// Package tui runs a simulation inside the terminal with Bubble Tea.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the viewer to advance one generation.
type TickMsg struct {
	At time.Time
	// Seq ties the tick to the loop that scheduled it so a speed change does
	// not leave two loops running.
	Seq int
}

func tickCmd(tps, seq int) tea.Cmd {
	interval := time.Second / time.Duration(tps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Seq: seq}
	})
}
