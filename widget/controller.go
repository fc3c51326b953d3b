package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/linanwx/supportchat/logger"
	"github.com/linanwx/supportchat/transport"
)

// State is the submission state of a widget instance.
type State int32

const (
	StateIdle State = iota
	StateAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting-reply"
	default:
		return "unknown"
	}
}

// ControllerConfig wires a Controller to its collaborators.
type ControllerConfig struct {
	Session *Session
	Client  transport.Client
	Surface Surface
	Clock   clockwork.Clock

	// Errors presents failure banners. Defaults to a presenter on Surface.
	Errors *ErrorPresenter
}

// Controller runs one user turn at a time: validate, lock the UI, send,
// render the reply or a banner, unlock. At most one request is in flight per
// Controller.
type Controller struct {
	session *Session
	client  transport.Client
	surface Surface
	clock   clockwork.Clock
	errors  *ErrorPresenter

	state atomic.Int32

	typingMu sync.Mutex
	typing   bool
}

// NewController validates cfg and builds a Controller in the idle state.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("controller: transport client is required")
	}
	if cfg.Surface == nil {
		return nil, fmt.Errorf("controller: surface is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Session == nil {
		cfg.Session = NewSession(cfg.Clock)
	}
	if cfg.Errors == nil {
		cfg.Errors = NewErrorPresenter(cfg.Surface, cfg.Clock, DefaultBannerTTL)
	}
	return &Controller{
		session: cfg.Session,
		client:  cfg.Client,
		surface: cfg.Surface,
		clock:   cfg.Clock,
		errors:  cfg.Errors,
	}, nil
}

// Session returns the conversation session this controller sends with.
func (c *Controller) Session() *Session { return c.session }

// Errors returns the banner presenter used for failed turns.
func (c *Controller) Errors() *ErrorPresenter { return c.errors }

// State reports whether a reply is outstanding.
func (c *Controller) State() State { return State(c.state.Load()) }

// Submit runs one turn for input. Blank input returns ErrEmptyInput and a
// submission while a reply is pending returns ErrBusy; neither touches the
// surface. Any other error has already been shown to the user as a banner.
func (c *Controller) Submit(ctx context.Context, input string) error {
	text := strings.TrimSpace(input)
	if text == "" {
		return ErrEmptyInput
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateAwaitingReply)) {
		return ErrBusy
	}
	defer c.release()

	c.surface.Apply(Patch{Kind: PatchClearInput})
	c.surface.Apply(Patch{Kind: PatchDisableSend})
	c.render(text, SenderUser)
	c.showTyping()

	reply, err := c.client.Send(ctx, &transport.Request{
		Message:        text,
		ConversationID: c.session.ConversationID(),
	})
	if err == nil && (reply == nil || !reply.HasText || reply.Text == "") {
		raw := ""
		if reply != nil {
			raw = reply.Raw
		}
		err = &MalformedReplyError{Raw: raw}
	}

	c.hideTyping()

	if err != nil {
		logger.Error("send message failed",
			"conversationId", c.session.ConversationID(),
			"kind", errorKind(err),
			"err", err,
		)
		c.errors.Present(FailureMessage)
		return err
	}

	c.render(reply.Text, SenderBot)
	return nil
}

func (c *Controller) render(text string, sender Sender) {
	now := c.clock.Now()
	c.surface.Apply(RenderMessage(Message{Text: text, Sender: sender, Timestamp: now}, now))
}

// release returns the widget to idle. It runs on every exit path of a turn.
func (c *Controller) release() {
	c.hideTyping()
	c.surface.Apply(Patch{Kind: PatchEnableSend})
	c.surface.Apply(Patch{Kind: PatchFocusInput})
	c.state.Store(int32(StateIdle))
}

func (c *Controller) showTyping() {
	c.typingMu.Lock()
	defer c.typingMu.Unlock()
	c.typing = true
	c.surface.Apply(Patch{Kind: PatchShowTyping})
}

func (c *Controller) hideTyping() {
	c.typingMu.Lock()
	defer c.typingMu.Unlock()
	if !c.typing {
		return
	}
	c.typing = false
	c.surface.Apply(Patch{Kind: PatchHideTyping})
}

func errorKind(err error) string {
	var malformed *MalformedReplyError
	var transportErr *transport.TransportError
	switch {
	case errors.As(err, &malformed):
		return "malformed_reply"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
