package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

type trackEndedMsg struct{}

// durationProbedMsg resolves a lazy duration probe for one track.
type durationProbedMsg struct {
	albumID     string
	trackNumber int
	seconds     int
	err         error
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
