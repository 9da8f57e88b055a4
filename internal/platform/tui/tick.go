// Package tui provides the Bubble Tea surface for the sand box.
// It paints session frames, maps keys to session commands and serves the
// same surface over ssh.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/render"
)

// FrameMsg carries a frame published by the session's tick loop.
type FrameMsg render.Frame

// feedClosedMsg is sent if the frame feed ever closes.
type feedClosedMsg struct{}

// waitForFrame returns a command that blocks until the next frame is ready.
// The model re-issues it after every frame, so at most one read is pending.
func waitForFrame(frames <-chan render.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return feedClosedMsg{}
		}
		return FrameMsg(f)
	}
}
