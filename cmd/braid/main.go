package main

import (
	"fmt"
	"os"

	"github.com/tessro/braid/internal/cli"
	"github.com/tessro/braid/internal/config"
	"github.com/tessro/braid/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "braid: %v\n", err)
		os.Exit(1)
	}

	level := logging.ParseLevel(cfg.GetLogLevel())
	cleanup, err := logging.Setup(cfg.GetLogPath(), level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "braid: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "braid: %v\n", err)
		os.Exit(1)
	}
}
