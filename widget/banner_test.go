package widget

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

func TestPresentShowsAndRemovesAfterTTL(t *testing.T) {
	surface := &recordingSurface{}
	clock := clockwork.NewFakeClock()
	p := NewErrorPresenter(surface, clock, 0)

	id := p.Present(FailureMessage)
	require.Equal(t, []PatchKind{PatchShowBanner}, surface.kinds())
	require.Equal(t, FailureMessage, surface.all()[0].Text)
	require.Equal(t, id, surface.all()[0].BannerID)

	clock.Advance(DefaultBannerTTL - time.Millisecond)
	require.Never(t, func() bool { return surface.count(PatchRemoveBanner) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return surface.count(PatchRemoveBanner) == 1 }, waitFor, time.Millisecond)
	require.Equal(t, []BannerID{id}, surface.removed())
	require.Zero(t, p.Active())
}

func TestBannersExpireIndependently(t *testing.T) {
	surface := &recordingSurface{}
	clock := clockwork.NewFakeClock()
	p := NewErrorPresenter(surface, clock, DefaultBannerTTL)

	first := p.Present("first")
	clock.Advance(5000 * time.Millisecond)
	second := p.Present("second")
	require.NotEqual(t, first, second)

	require.Eventually(t, func() bool { return surface.count(PatchRemoveBanner) == 1 }, waitFor, time.Millisecond)
	require.Equal(t, []BannerID{first}, surface.removed(), "first banner goes 5000ms after its own insertion")
	require.Equal(t, 1, p.Active())

	clock.Advance(4999 * time.Millisecond)
	require.Never(t, func() bool { return surface.count(PatchRemoveBanner) > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return surface.count(PatchRemoveBanner) == 2 }, waitFor, time.Millisecond)
	require.Equal(t, []BannerID{first, second}, surface.removed())
}

func TestPresentDoesNotDeduplicate(t *testing.T) {
	surface := &recordingSurface{}
	p := NewErrorPresenter(surface, clockwork.NewFakeClock(), 0)

	p.Present(FailureMessage)
	p.Present(FailureMessage)

	require.Equal(t, 2, surface.count(PatchShowBanner))
	require.Equal(t, 2, p.Active())
}

func TestDismissBeforeTimer(t *testing.T) {
	surface := &recordingSurface{}
	clock := clockwork.NewFakeClock()
	p := NewErrorPresenter(surface, clock, 0)

	id := p.Present("oops")
	require.True(t, p.Dismiss(id))
	require.False(t, p.Dismiss(id), "second dismiss is a no-op")
	require.Equal(t, 1, surface.count(PatchRemoveBanner))

	clock.Advance(DefaultBannerTTL)
	require.Never(t, func() bool { return surface.count(PatchRemoveBanner) > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestPresentSanitizesText(t *testing.T) {
	surface := &recordingSurface{}
	p := NewErrorPresenter(surface, clockwork.NewFakeClock(), 0)

	p.Present("\x1b[2Jbad")
	require.Equal(t, "bad", surface.all()[0].Text)
}
