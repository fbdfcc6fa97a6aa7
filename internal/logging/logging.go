// Package logging builds the zerolog logger used by vdiff.
package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config contains logging configuration.
type Config struct {
	Level   string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Format  string `yaml:"format" validate:"omitempty,oneof=console json"`
	NoColor bool   `yaml:"no_color"`
}

// ApplyDefaults fills in unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
}

// Validate checks the level and format names.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil || c.Level == "" {
		return fmt.Errorf("log.level must be one of trace, debug, info, warn, error, disabled (got: %s)", c.Level)
	}
	if !slices.Contains([]string{FormatConsole, FormatJSON}, strings.ToLower(c.Format)) {
		return fmt.Errorf("log.format must be one of console, json (got: %s)", c.Format)
	}
	return nil
}

// New returns a logger writing to w. Console output is uncoloured when
// NoColor is set or w is not a terminal.
func New(cfg Config, w io.Writer) zerolog.Logger {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}

	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == FormatJSON {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor || !isTerminal(w),
		})
	}
	return zl.Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
