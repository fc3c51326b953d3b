package widget

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultBannerTTL is how long an error banner stays before it removes itself.
const DefaultBannerTTL = 5000 * time.Millisecond

// ErrorPresenter shows transient error banners on a Surface.
// Every banner gets its own removal timer; banners are never deduplicated.
type ErrorPresenter struct {
	surface Surface
	clock   clockwork.Clock
	ttl     time.Duration

	mu     sync.Mutex
	nextID BannerID
	active map[BannerID]clockwork.Timer
}

// NewErrorPresenter creates a presenter. A nil clock uses the real clock and
// a non-positive ttl uses DefaultBannerTTL.
func NewErrorPresenter(surface Surface, clock clockwork.Clock, ttl time.Duration) *ErrorPresenter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &ErrorPresenter{
		surface: surface,
		clock:   clock,
		ttl:     ttl,
		active:  make(map[BannerID]clockwork.Timer),
	}
}

// Present inserts a banner and schedules its removal.
func (p *ErrorPresenter) Present(message string) BannerID {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.surface.Apply(Patch{Kind: PatchShowBanner, BannerID: id, Text: SanitizeText(message)})
	p.active[id] = p.clock.AfterFunc(p.ttl, func() { p.remove(id) })
	p.mu.Unlock()
	return id
}

// Dismiss removes a banner before its timer fires. It reports whether the
// banner was still shown.
func (p *ErrorPresenter) Dismiss(id BannerID) bool {
	p.mu.Lock()
	timer, ok := p.active[id]
	p.mu.Unlock()
	if !ok {
		return false
	}
	timer.Stop()
	return p.remove(id)
}

// Active returns the number of banners currently shown.
func (p *ErrorPresenter) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

func (p *ErrorPresenter) remove(id BannerID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.active[id]; !ok {
		return false
	}
	delete(p.active, id)
	p.surface.Apply(Patch{Kind: PatchRemoveBanner, BannerID: id})
	return true
}
