package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/poll/internal/cli"
	"github.com/idilsaglam/poll/internal/config"
	"github.com/idilsaglam/poll/internal/poll"
	"github.com/idilsaglam/poll/internal/store"
	"github.com/idilsaglam/poll/internal/tui"
	"github.com/idilsaglam/poll/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadEnv(); err != nil {
		ui.Fail(os.Stderr, err.Error())
	}

	// Root flags (apply to every subcommand)
	cfg, args, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintHelp(os.Stdout)
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Keep log lines off the alt screen.
	var logOut io.Writer = os.Stderr
	if args[0] == "tui" {
		logOut = io.Discard
	}
	logger, closeLog, err := cfg.Logger(logOut)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer closeLog()
	slog.SetDefault(logger)

	backend, err := store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		ui.Fail(os.Stderr, "open storage: "+err.Error())
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("close storage", "error", err)
		}
	}()
	logger.Debug("storage ready", "backend", cfg.Backend, "dir", cfg.DataDir)

	s, err := poll.Open(backend, poll.WithLogger(logger))
	if err != nil {
		ui.Fail(os.Stderr, "load: "+err.Error())
		return 1
	}

	code := cli.Run(args, cli.Options{
		Store:       s,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Interactive: tui.Run,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
