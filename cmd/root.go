// Package cmd implements the supportchat command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linanwx/supportchat/config"
	"github.com/linanwx/supportchat/logger"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "supportchat",
	Short: "Terminal client for the e-commerce support assistant",
	Long: `supportchat talks to the customer support chat service from the terminal.

Examples:
  supportchat chat                       # open the chat window
  supportchat chat -m "where is my order?"
  supportchat onboard                    # write a config file
  supportchat devserver                  # serve a local /chat endpoint`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyConfigDir,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.supportchat)")
}

// errTurnFailed marks a chat turn that failed after the user already saw the
// failure banner. It sets the exit code and prints nothing more.
var errTurnFailed = errors.New("chat turn failed")

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := execute(os.Args[1:], os.Stdout, os.Stderr)
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func execute(args []string, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errTurnFailed) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return err
}

// applyConfigDir re-initializes logging when --config-dir moves the config.
func applyConfigDir(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("config-dir") {
		return nil
	}
	config.SetConfigDir(configDir)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
