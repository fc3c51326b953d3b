package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/linanwx/supportchat/config"
	"github.com/linanwx/supportchat/devserver"
	"github.com/linanwx/supportchat/logger"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Serve a local /chat endpoint",
	Long: `Start a local server that speaks the chat service protocol.

With GROQ_API_KEY set (or devServer.llm in config.yaml) each message is routed
to an order, delivery, payment or account expert model and the expert answer is
rewritten for the customer. Without a key it answers from canned replies.

Examples:
  supportchat devserver
  GROQ_API_KEY=... supportchat devserver
  supportchat chat --api-base http://127.0.0.1:8000`,
	RunE: runDevserver,
}

var devserverAddr string

func init() {
	devserverCmd.Flags().StringVar(&devserverAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(devserverCmd)
}

func runDevserver(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.DevServer.Addr
	if devserverAddr != "" {
		addr = devserverAddr
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

	responder, err := buildResponder(cfg.DevServer.LLM)
	if err != nil {
		return err
	}

	fmt.Printf("Dev server listening on http://%s. Press Ctrl+C to stop.\n", addr)
	return devserver.ListenAndServe(ctx, addr, responder)
}

func buildResponder(llm config.LLMConfig) (devserver.Responder, error) {
	opts := devserver.LLMOptions{
		Provider:    llm.Provider,
		APIKey:      llm.GetAPIKey(),
		APIBase:     llm.APIBase,
		Model:       llm.Model,
		Temperature: llm.Temperature,
	}
	responder, err := devserver.NewResponder(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build responder: %w", err)
	}
	if opts.APIKey == "" {
		logger.Info("dev server using canned replies", "provider", llm.Provider)
	} else {
		logger.Info("dev server using llm pipeline", "provider", llm.Provider, "model", llm.Model)
	}
	return responder, nil
}
