package widget

import (
	"errors"
	"fmt"
)

// FailureMessage is the only error text users ever see for a failed turn.
const FailureMessage = "Failed to send message. Please try again."

var (
	// ErrEmptyInput is returned when the submitted text is blank. The
	// submission is silently dropped.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned when a reply is still outstanding.
	ErrBusy = errors.New("a reply is still pending")
)

// MalformedReplyError reports a successful exchange whose payload lacks a
// usable response text.
type MalformedReplyError struct {
	Raw string
}

func (e *MalformedReplyError) Error() string {
	if e.Raw == "" {
		return "malformed reply: missing response"
	}
	return fmt.Sprintf("malformed reply: missing response in %s", e.Raw)
}
