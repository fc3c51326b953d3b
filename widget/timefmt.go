package widget

import (
	"fmt"
	"time"
)

// FormatTime returns a short label for t as seen at now.
// Under a minute reads "Just now", under an hour "{N}m ago", anything older
// falls back to the wall-clock HH:MM of t.
func FormatTime(t, now time.Time) string {
	mins := int(now.Sub(t) / time.Minute)
	if mins < 1 {
		return "Just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	return t.Format("15:04")
}
