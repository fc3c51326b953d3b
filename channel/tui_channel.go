package channel

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linanwx/supportchat/channel/tui"
	"github.com/linanwx/supportchat/logger"
	"github.com/linanwx/supportchat/widget"
)

// TUIChannel hosts the widget in a full-screen bubbletea program.
type TUIChannel struct {
	cfg     CLIConfig
	program atomic.Pointer[tea.Program]
}

// NewTUIChannel creates a TUI channel. The program starts in Run.
func NewTUIChannel(cfg CLIConfig) *TUIChannel {
	return &TUIChannel{cfg: cfg}
}

func (c *TUIChannel) Name() string { return "tui" }

// Apply forwards the patch to the event loop. Patches sent before Run or
// after the program exits are dropped.
func (c *TUIChannel) Apply(p widget.Patch) {
	if program := c.program.Load(); program != nil {
		program.Send(tui.PatchMsg{Patch: p})
	}
}

// Run blocks until the user quits or ctx is done.
func (c *TUIChannel) Run(ctx context.Context, submit SubmitFunc, dismiss DismissFunc) error {
	app := tui.NewApp(tui.Options{
		Prompt:   c.cfg.Prompt,
		ShowLogs: c.cfg.ShowLogs,
		Now:      c.cfg.Now,
		Submit: func(text string) error {
			return submit(ctx, text)
		},
		Dismiss: func(id widget.BannerID) {
			if dismiss != nil {
				dismiss(id)
			}
		},
	})
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	c.program.Store(program)
	defer c.program.Store(nil)

	// Redirect logger output to the TUI log panel.
	logger.Intercept(&logWriter{program: program})
	defer logger.Restore()

	logger.Info("cli channel started (TUI mode)")
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		err = nil
	}
	logger.Info("cli channel stopped")
	return err
}

// logWriter implements io.Writer and sends each write as a LogLineMsg to the TUI.
type logWriter struct {
	program *tea.Program
}

func (w *logWriter) Write(p []byte) (int, error) {
	// Split on newlines in case a single write contains multiple lines.
	lines := bytes.Split(p, []byte("\n"))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		w.program.Send(tui.LogLineMsg{Line: string(line)})
	}
	return len(p), nil
}
