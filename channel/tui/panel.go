// Package tui provides the terminal front-end of the chat widget.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linanwx/supportchat/widget"
)

// Panel is a composable TUI region with its own state, update logic, and view.
// The root App model orchestrates panels without knowing their internals.
type Panel interface {
	Update(tea.Msg) (Panel, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// LogLineMsg carries a single log line from the logger writer.
type LogLineMsg struct{ Line string }

// PatchMsg carries a widget display patch into the event loop.
type PatchMsg struct{ Patch widget.Patch }

// InputSubmitMsg is emitted when the user presses Enter in the input panel.
type InputSubmitMsg struct{ Text string }

// SubmitDoneMsg reports the outcome of a submission once the turn settles.
type SubmitDoneMsg struct{ Err error }

// refreshLabelsMsg asks the chat panel to recompute relative time labels.
type refreshLabelsMsg struct{}
