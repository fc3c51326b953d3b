// Package channel provides the display front-ends that host the chat widget.
package channel

import (
	"context"

	"github.com/linanwx/supportchat/channel/tui"
	"github.com/linanwx/supportchat/widget"
)

// SubmitFunc runs one user turn. It blocks until the turn settles.
type SubmitFunc func(ctx context.Context, text string) error

// DismissFunc removes an error banner before it expires.
type DismissFunc func(id widget.BannerID)

// Channel is a front-end for the widget: it is the display surface the
// controller patches and it owns the input loop.
type Channel interface {
	widget.Surface

	// Name returns the channel name (e.g. "tui", "plain").
	Name() string

	// Run reads user input and hands it to submit until the user quits or
	// ctx is done.
	Run(ctx context.Context, submit SubmitFunc, dismiss DismissFunc) error
}

// IsQuitCommand reports whether text asks to leave the chat.
func IsQuitCommand(text string) bool {
	return tui.IsQuitCommand(text)
}
