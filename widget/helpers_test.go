package widget

import (
	"context"
	"sync"

	"github.com/linanwx/supportchat/transport"
)

// recordingSurface keeps every applied patch in order.
type recordingSurface struct {
	mu      sync.Mutex
	patches []Patch
}

func (s *recordingSurface) Apply(p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, p)
}

func (s *recordingSurface) all() []Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Patch(nil), s.patches...)
}

func (s *recordingSurface) kinds() []PatchKind {
	var out []PatchKind
	for _, p := range s.all() {
		out = append(out, p.Kind)
	}
	return out
}

func (s *recordingSurface) count(kind PatchKind) int {
	n := 0
	for _, p := range s.all() {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

func (s *recordingSurface) removed() []BannerID {
	var out []BannerID
	for _, p := range s.all() {
		if p.Kind == PatchRemoveBanner {
			out = append(out, p.BannerID)
		}
	}
	return out
}

func (s *recordingSurface) messages() []Patch {
	var out []Patch
	for _, p := range s.all() {
		if p.Kind == PatchAppendMessage {
			out = append(out, p)
		}
	}
	return out
}

// fakeClient answers with a canned reply, optionally blocking until released.
type fakeClient struct {
	mu       sync.Mutex
	requests []*transport.Request

	reply   *transport.Reply
	err     error
	panicV  any
	started chan struct{}
	release chan struct{}
}

func (c *fakeClient) Send(ctx context.Context, req *transport.Request) (*transport.Reply, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.panicV != nil {
		panic(c.panicV)
	}
	return c.reply, c.err
}

func (c *fakeClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func textReply(s string) *transport.Reply {
	return &transport.Reply{Text: s, HasText: true, Raw: `{"response":"` + s + `"}`}
}
