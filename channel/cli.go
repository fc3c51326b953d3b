package channel

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/linanwx/supportchat/logger"
	"github.com/linanwx/supportchat/widget"
)

const defaultPrompt = "you> "

// CLIConfig configures the terminal channels.
type CLIConfig struct {
	Prompt   string
	ShowLogs bool
	Now      func() time.Time
}

// NewCLIChannel creates a CLI channel.
// If stdin is a terminal, it returns a TUI-based channel; otherwise a plain
// line-oriented one.
func NewCLIChannel(cfg CLIConfig) Channel {
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTUIChannel(cfg)
	}
	return NewPlainChannel(cfg, os.Stdin, os.Stdout, os.Stderr)
}

// PlainChannel renders the widget as plain lines. Messages go to out,
// banners to errOut. Input is read line by line and each turn finishes
// before the next line is read.
type PlainChannel struct {
	prompt string
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	mu sync.Mutex
}

// NewPlainChannel creates a plain channel over the given streams.
func NewPlainChannel(cfg CLIConfig, in io.Reader, out, errOut io.Writer) *PlainChannel {
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &PlainChannel{
		prompt: cfg.Prompt,
		in:     in,
		out:    out,
		errOut: errOut,
		now:    cfg.Now,
	}
}

func (c *PlainChannel) Name() string { return "plain" }

// Apply writes the patch. Input-control patches have no plain rendering.
func (c *PlainChannel) Apply(p widget.Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p.Kind {
	case widget.PatchAppendMessage:
		name := "you"
		if p.Sender == widget.SenderBot {
			name = "support"
		}
		fmt.Fprintf(c.out, "%s %s (%s)\n", p.Icon, name, p.TimeLabel)
		for _, line := range strings.Split(p.Text, "\n") {
			fmt.Fprintf(c.out, "   %s\n", line)
		}
	case widget.PatchShowTyping:
		fmt.Fprintln(c.out, "...")
	case widget.PatchShowBanner:
		fmt.Fprintf(c.errOut, "! %s\n", p.Text)
	}
}

// Run reads lines until EOF, a quit command, or ctx is done.
func (c *PlainChannel) Run(ctx context.Context, submit SubmitFunc, _ DismissFunc) error {
	logger.Info("cli channel started (plain mode)")
	defer logger.Info("cli channel stopped")

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		c.writePrompt()

		select {
		case <-ctx.Done():
			return nil
		case text, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			if IsQuitCommand(text) {
				c.mu.Lock()
				fmt.Fprintln(c.out, "Goodbye!")
				c.mu.Unlock()
				return nil
			}
			err := submit(ctx, text)
			if err != nil && !errors.Is(err, widget.ErrEmptyInput) && !errors.Is(err, widget.ErrBusy) {
				logger.Debug("turn failed", "err", err)
			}
		}
	}
}

func (c *PlainChannel) writePrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.prompt)
}
