// Package config resolves settings from root flags, then environment
// variables (optionally seeded from a .env file), then defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/poll/internal/store"
	"github.com/idilsaglam/poll/internal/ui"
)

const dataDirName = ".poll"

type Config struct {
	Backend  store.Kind
	DataDir  string
	Theme    string
	LogLevel slog.Level
	LogFile  string
	NoColor  bool
}

// LoadEnv reads .env from the working directory when present.
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Parse reads root flags from args and returns the config plus the
// remaining (subcommand) arguments.
func Parse(args []string, stderr io.Writer) (Config, []string, error) {
	var (
		cfg                        Config
		backend, level, dir, theme string
		logFile                    string
	)

	fs := flag.NewFlagSet("poll", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&backend, "backend", "", "storage backend: file, sqlite or memory (env POLL_BACKEND)")
	fs.StringVar(&dir, "data", "", "data directory (env POLL_DATA_DIR, default ~/.poll)")
	fs.StringVar(&theme, "theme", "", "color theme: classic, neon or mono (env POLL_THEME)")
	fs.StringVar(&level, "log-level", "", "debug, info, warn or error (env POLL_LOG_LEVEL)")
	fs.StringVar(&logFile, "log-file", "", "write logs to this file (env POLL_LOG_FILE)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colors (env NO_COLOR)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	var err error
	if cfg.Backend, err = store.ParseKind(orEnv(backend, "POLL_BACKEND", string(store.KindFile))); err != nil {
		return Config{}, nil, err
	}
	if cfg.LogLevel, err = parseLevel(orEnv(level, "POLL_LOG_LEVEL", "warn")); err != nil {
		return Config{}, nil, err
	}
	cfg.Theme = strings.ToLower(orEnv(theme, "POLL_THEME", "classic"))
	if !slices.Contains(ui.Themes, cfg.Theme) {
		return Config{}, nil, fmt.Errorf("unknown theme %q (want %s)", cfg.Theme, strings.Join(ui.Themes, ", "))
	}
	cfg.LogFile = orEnv(logFile, "POLL_LOG_FILE", "")
	if !cfg.NoColor {
		// https://no-color.org: any non-empty value disables color
		cfg.NoColor = os.Getenv("NO_COLOR") != ""
	}

	cfg.DataDir = orEnv(dir, "POLL_DATA_DIR", "")
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, nil, fmt.Errorf("home: %w", err)
		}
		cfg.DataDir = filepath.Join(home, dataDirName)
	}

	return cfg, fs.Args(), nil
}

func orEnv(flagVal, env, def string) string {
	if v := strings.TrimSpace(flagVal); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.New("invalid log level " + strconv.Quote(s))
	}
	return l, nil
}

// Logger builds a text logger at the configured level. When LogFile is
// set logs go there instead of w; the returned close func must be called.
func (c Config) Logger(w io.Writer) (*slog.Logger, func() error, error) {
	closeFn := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel})
	return slog.New(h), closeFn, nil
}
