package widget

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const (
	IconUser = "👤"
	IconBot  = "💬"
)

// IconFor returns the avatar glyph for sender.
func IconFor(sender Sender) string {
	if sender == SenderBot {
		return IconBot
	}
	return IconUser
}

// RenderMessage describes how msg should be appended to the display.
// The text is treated as plain content: escape sequences and control
// characters are removed so a message can never drive the terminal.
func RenderMessage(msg Message, now time.Time) Patch {
	return Patch{
		Kind:      PatchAppendMessage,
		Sender:    msg.Sender,
		Icon:      IconFor(msg.Sender),
		Text:      SanitizeText(msg.Text),
		TimeLabel: FormatTime(msg.Timestamp, now),
		Timestamp: msg.Timestamp,
		Scroll:    true,
	}
}

// SanitizeText strips ANSI sequences and drops control runes other than
// newline and tab.
func SanitizeText(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
