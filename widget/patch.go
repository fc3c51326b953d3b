// Package widget implements the chat widget core: the submission state
// machine, message rendering, error banners and the helpers they share.
// Nothing in here touches a terminal directly; every visible change is
// described as a Patch and handed to a Surface supplied by the UI shell.
package widget

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable entry in the conversation display.
type Message struct {
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// PatchKind enumerates the display mutations a Surface must support.
type PatchKind int

const (
	PatchAppendMessage PatchKind = iota
	PatchShowTyping
	PatchHideTyping
	PatchDisableSend
	PatchEnableSend
	PatchClearInput
	PatchFocusInput
	PatchShowBanner
	PatchRemoveBanner
)

var patchKindNames = map[PatchKind]string{
	PatchAppendMessage: "append-message",
	PatchShowTyping:    "show-typing",
	PatchHideTyping:    "hide-typing",
	PatchDisableSend:   "disable-send",
	PatchEnableSend:    "enable-send",
	PatchClearInput:    "clear-input",
	PatchFocusInput:    "focus-input",
	PatchShowBanner:    "show-banner",
	PatchRemoveBanner:  "remove-banner",
}

func (k PatchKind) String() string {
	if name, ok := patchKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// BannerID identifies one error banner for later removal.
type BannerID int64

// Patch describes a single change to the display surface.
// Only the fields relevant to Kind are set.
type Patch struct {
	Kind PatchKind

	// Text is the message body or the banner text.
	Text string

	Sender    Sender
	Icon      string
	TimeLabel string
	Timestamp time.Time
	Scroll    bool

	BannerID BannerID
}

// Surface applies patches to whatever the UI shell renders on.
// Implementations must be safe for use from multiple goroutines: banner
// timers fire on their own goroutine.
type Surface interface {
	Apply(p Patch)
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(p Patch)

func (f SurfaceFunc) Apply(p Patch) { f(p) }
