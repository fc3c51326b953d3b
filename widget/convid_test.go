package widget

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var conversationIDPattern = regexp.MustCompile(`^conv_(\d+)_([0-9a-z]{9})$`)

func TestNewConversationIDFormat(t *testing.T) {
	now := time.UnixMilli(1760000000123)
	id := NewConversationID(now)

	m := conversationIDPattern.FindStringSubmatch(id)
	if m == nil {
		t.Fatalf("NewConversationID() = %q, want conv_<digits>_<9 alnum>", id)
	}
	millis, _ := strconv.ParseInt(m[1], 10, 64)
	if millis != now.UnixMilli() {
		t.Fatalf("millis = %d, want %d", millis, now.UnixMilli())
	}
}

func TestNewConversationIDDiffersBetweenCalls(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewConversationID(now)
		if seen[id] {
			t.Fatalf("duplicate id %q after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestNewSessionIsStampedByClock(t *testing.T) {
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)

	s := NewSession(clock)
	if !s.CreatedAt().Equal(start) {
		t.Fatalf("CreatedAt() = %v, want %v", s.CreatedAt(), start)
	}
	want := "conv_" + strconv.FormatInt(start.UnixMilli(), 10) + "_"
	if got := s.ConversationID(); len(got) != len(want)+conversationSuffixLen || got[:len(want)] != want {
		t.Fatalf("ConversationID() = %q, want prefix %q", got, want)
	}
}
