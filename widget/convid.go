package widget

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	conversationIDPrefix    = "conv_"
	conversationSuffixLen   = 9
	conversationSuffixChars = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewConversationID builds a best-effort unique token of the form
// conv_{unix millis}_{9 base-36 chars}. Collisions are not detected.
func NewConversationID(now time.Time) string {
	suffix := make([]byte, conversationSuffixLen)
	for i := range suffix {
		suffix[i] = conversationSuffixChars[rand.IntN(len(conversationSuffixChars))]
	}
	return fmt.Sprintf("%s%d_%s", conversationIDPrefix, now.UnixMilli(), suffix)
}

// Session correlates every message sent from one widget instance.
// It is created once and never mutated.
type Session struct {
	id        string
	createdAt time.Time
}

// NewSession starts a conversation session stamped with clock's current time.
func NewSession(clock clockwork.Clock) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	now := clock.Now()
	return &Session{id: NewConversationID(now), createdAt: now}
}

// ConversationID returns the opaque token sent with every request.
func (s *Session) ConversationID() string { return s.id }

// CreatedAt returns when the session was started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }
