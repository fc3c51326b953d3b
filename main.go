// supportchat is a terminal client for the e-commerce support assistant.
package main

import (
	"fmt"
	"os"

	"github.com/linanwx/supportchat/cmd"
	"github.com/linanwx/supportchat/config"
	"github.com/linanwx/supportchat/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	dir, _ := config.ConfigDir()
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	cmd.Execute()
}
