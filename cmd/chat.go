package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/linanwx/supportchat/channel"
	"github.com/linanwx/supportchat/config"
	"github.com/linanwx/supportchat/logger"
	"github.com/linanwx/supportchat/transport"
	"github.com/linanwx/supportchat/widget"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with customer support",
	Long: `Open the support chat. On a terminal this is a full-screen window;
with redirected input each line is sent as one message.

Type exit or quit to leave. Press esc to dismiss an error banner.`,
	RunE: runChat,
}

var (
	chatMessage string
	chatAPIBase string
)

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send one message, print the reply, and exit")
	chatCmd.Flags().StringVar(&chatAPIBase, "api-base", "", "Chat service base URL (overrides config)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if base := strings.TrimSpace(chatAPIBase); base != "" {
		cfg.API.BaseURL = base
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	if cmd.Flags().Changed("message") {
		return sendOnce(ctx, cfg, chatMessage, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	ch := channel.NewCLIChannel(channel.CLIConfig{
		Prompt:   cfg.UI.Prompt,
		ShowLogs: cfg.UI.ShowLogs,
	})
	ctrl, err := newController(cfg, ch)
	if err != nil {
		return err
	}
	logger.Info("chat initialized",
		"conversationId", ctrl.Session().ConversationID(),
		"channel", ch.Name(),
		"endpoint", transport.ChatEndpoint(cfg.API.BaseURL),
	)

	return ch.Run(ctx, ctrl.Submit, func(id widget.BannerID) {
		ctrl.Errors().Dismiss(id)
	})
}

// sendOnce runs a single turn through a plain surface. The reply goes to out
// and a failure banner to errOut; the underlying error is only logged.
func sendOnce(ctx context.Context, cfg *config.Config, message string, out, errOut io.Writer) error {
	surface := channel.NewPlainChannel(channel.CLIConfig{Prompt: cfg.UI.Prompt}, strings.NewReader(""), out, errOut)
	ctrl, err := newController(cfg, surface)
	if err != nil {
		return err
	}
	logger.Info("chat initialized", "conversationId", ctrl.Session().ConversationID(), "channel", "once")

	err = ctrl.Submit(ctx, message)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, widget.ErrEmptyInput):
		return fmt.Errorf("nothing to send: %w", err)
	default:
		return fmt.Errorf("%w: %w", errTurnFailed, err)
	}
}

func newController(cfg *config.Config, surface widget.Surface) (*widget.Controller, error) {
	clock := clockwork.NewRealClock()
	return widget.NewController(widget.ControllerConfig{
		Session: widget.NewSession(clock),
		Client:  transport.NewHTTPClient(cfg.API.BaseURL),
		Surface: surface,
		Clock:   clock,
		Errors:  widget.NewErrorPresenter(surface, clock, cfg.UI.BannerTTL),
	})
}
