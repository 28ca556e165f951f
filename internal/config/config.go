// Package config resolves runtime options from flags and environment
// variables. Flags win over environment values, which win over defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tty-menu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envMenuFile = "TTY_MENU_FILE"
	envWidth    = "TTY_MENU_WIDTH"
	envHeight   = "TTY_MENU_HEIGHT"
	envVerbose  = "TTY_MENU_VERBOSE"
	envTrace    = "TTY_MENU_TRACE"
	envLogFile  = "TTY_MENU_LOG_FILE"
)

// environment is a parsed copy of "KEY=VALUE" pairs with typed lookups.
// Malformed values fall back silently; the menu should still start when
// someone exports TTY_MENU_WIDTH=lots.
type environment map[string]string

func parseEnvironment(pairs []string) environment {
	env := make(environment, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

func (e environment) str(key, fallback string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return fallback
}

func (e environment) integer(key string, fallback int) int {
	v, ok := e[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (e environment) boolean(key string, fallback bool) bool {
	v, ok := e[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnvironment(environ)

	fs := flag.NewFlagSet("tty-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu", env.str(envMenuFile, ""), "path to a JSON menu definition (empty uses the built-in demo menu)")
	width := fs.Int("width", env.integer(envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", env.integer(envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", env.boolean(envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", env.boolean(envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", env.str(envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	return Config{
		App: app.Config{
			MenuFile: *menuFile,
			Width:    *width,
			Height:   *height,
			Verbose:  *verbose,
		},
		Logging:  Logging{FilePath: *logFile, Trace: *trace},
		Features: Features{Verbose: *verbose},
		Flags: map[string]string{
			"menu":    *menuFile,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks that configured paths exist before the terminal is put
// into raw mode.
func Validate(cfg Config) error {
	if cfg.App.MenuFile != "" {
		if _, err := os.Stat(cfg.App.MenuFile); err != nil {
			return fmt.Errorf("menu file: %w", err)
		}
	}
	return nil
}
