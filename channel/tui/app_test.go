package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linanwx/supportchat/widget"
)

func newSizedApp(t *testing.T, opts Options) *App {
	t.Helper()
	app := NewApp(opts)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

func appendPatch(text string, sender widget.Sender, at time.Time) PatchMsg {
	return PatchMsg{Patch: widget.RenderMessage(widget.Message{Text: text, Sender: sender, Timestamp: at}, at)}
}

func TestAppRendersAppendedMessages(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	app := newSizedApp(t, Options{Prompt: "you> ", Now: func() time.Time { return now }})

	app.Update(appendPatch("where is my order?", widget.SenderUser, now))
	app.Update(appendPatch("It shipped yesterday.", widget.SenderBot, now))

	if got := app.chatPanel.Len(); got != 2 {
		t.Fatalf("chat entries = %d, want 2", got)
	}
	view := app.View()
	for _, want := range []string{"where is my order?", "It shipped yesterday.", widget.IconBot, "Just now"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppRefreshesRelativeLabels(t *testing.T) {
	sent := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	now := sent
	app := newSizedApp(t, Options{Now: func() time.Time { return now }})

	app.Update(appendPatch("hello", widget.SenderUser, sent))
	now = sent.Add(12 * time.Minute)
	app.Update(refreshLabelsMsg{})

	if !strings.Contains(app.View(), "12m ago") {
		t.Fatalf("view should show refreshed label, got:\n%s", app.View())
	}
}

func TestInputPanelIgnoresEnterWhileDisabled(t *testing.T) {
	p := NewInputPanel("you> ")
	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchDisableSend}})
	if !p.Disabled() {
		t.Fatal("input should be disabled")
	}
	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("Enter should not submit while disabled")
	}

	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchEnableSend}})
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter should submit when enabled")
	}
	msg, ok := cmd().(InputSubmitMsg)
	if !ok || msg.Text != "hi" {
		t.Fatalf("cmd() = %#v, want InputSubmitMsg{hi}", cmd())
	}
}

func TestInputPanelClearInput(t *testing.T) {
	p := NewInputPanel("> ")
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("draft")})
	if p.Value() != "draft" {
		t.Fatalf("Value() = %q", p.Value())
	}
	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchClearInput}})
	if p.Value() != "" {
		t.Fatalf("Value() after clear = %q, want empty", p.Value())
	}
}

func TestStatusPanelTypingAndBanners(t *testing.T) {
	p := NewStatusPanel()

	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchShowTyping}})
	if !p.Typing() || !strings.Contains(p.View(), typingText) {
		t.Fatalf("typing indicator not shown: %q", p.View())
	}
	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchHideTyping}})
	if p.Typing() {
		t.Fatal("typing indicator should be hidden")
	}

	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchShowBanner, BannerID: 1, Text: "first"}})
	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchShowBanner, BannerID: 2, Text: "second"}})
	if got := p.Banners(); len(got) != 2 || got[0] != 2 {
		t.Fatalf("Banners() = %v, want newest first", got)
	}
	if p.Height() != 3 {
		t.Fatalf("Height() = %d, want 3", p.Height())
	}

	p.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchRemoveBanner, BannerID: 1}})
	if got := p.Banners(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("Banners() after remove = %v, want [2]", got)
	}
}

func TestAppSubmitRunsOffLoop(t *testing.T) {
	var submitted string
	app := newSizedApp(t, Options{Submit: func(text string) error {
		submitted = text
		return nil
	}})

	_, cmd := app.Update(InputSubmitMsg{Text: "hello"})
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	if submitted != "" {
		t.Fatal("submit must not run inside Update")
	}
	if _, ok := cmd().(SubmitDoneMsg); !ok {
		t.Fatal("command should report SubmitDoneMsg")
	}
	if submitted != "hello" {
		t.Fatalf("submitted = %q, want hello", submitted)
	}
}

func TestAppQuitCommands(t *testing.T) {
	app := newSizedApp(t, Options{Submit: func(string) error {
		t.Fatal("quit commands must not be submitted")
		return nil
	}})

	for _, text := range []string{"exit", "quit", "/exit", " /quit "} {
		_, cmd := app.Update(InputSubmitMsg{Text: text})
		if cmd == nil {
			t.Fatalf("%q should quit", text)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%q should produce tea.QuitMsg", text)
		}
	}
}

func TestAppEscDismissesNewestBanner(t *testing.T) {
	var dismissed widget.BannerID
	app := newSizedApp(t, Options{Dismiss: func(id widget.BannerID) { dismissed = id }})

	if _, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Fatal("esc without banners should do nothing")
	}

	app.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchShowBanner, BannerID: 4, Text: "a"}})
	app.Update(PatchMsg{Patch: widget.Patch{Kind: widget.PatchShowBanner, BannerID: 5, Text: "b"}})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should dismiss a banner")
	}
	cmd()
	if dismissed != 5 {
		t.Fatalf("dismissed = %d, want 5", dismissed)
	}
}

func TestAppLogPanelOnlyWhenEnabled(t *testing.T) {
	app := newSizedApp(t, Options{ShowLogs: true})
	app.Update(LogLineMsg{Line: "level=INFO msg=\"chat initialized\"\n"})
	if app.logPanel.Len() != 1 {
		t.Fatalf("log lines = %d, want 1", app.logPanel.Len())
	}
	if !strings.Contains(app.View(), "chat initialized") {
		t.Fatal("log line should be visible when ShowLogs is on")
	}

	hidden := newSizedApp(t, Options{})
	hidden.Update(LogLineMsg{Line: "secret diagnostics"})
	if strings.Contains(hidden.View(), "secret diagnostics") {
		t.Fatal("log panel should be hidden by default")
	}
}
