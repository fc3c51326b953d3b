package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/linanwx/supportchat/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize supportchat configuration",
	Long:  `Create the supportchat configuration directory and config file.`,
	RunE:  runOnboard,
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or delete it first.")
		return nil
	}

	// --- interactive wizard ---

	cfg := config.DefaultConfig()
	var (
		baseURL  = cfg.API.BaseURL
		showLogs = cfg.UI.ShowLogs
		logLevel = cfg.Logging.Level
	)

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Support service URL").
				Description("Base URL of the chat service. Messages are posted to {url}/chat.").
				Value(&baseURL).
				Validate(validateBaseURL),
			huh.NewConfirm().
				Title("Show the log panel?").
				Description("Displays request logs above the conversation.").
				Value(&showLogs),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("info", "info"),
					huh.NewOption("debug", "debug"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&logLevel),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg.API.BaseURL = strings.TrimSpace(baseURL)
	cfg.UI.ShowLogs = showLogs
	cfg.Logging.Level = logLevel
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("supportchat initialized successfully!")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Service:", cfg.API.BaseURL)
	fmt.Println()
	fmt.Println("Run 'supportchat chat' to start.")
	return nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}
