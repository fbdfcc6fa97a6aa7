package command

import (
	"slices"

	"github.com/rs/zerolog"
)

// Preferences carries the settings that apply to every Command built with
// them. The zero value is usable; empty fields fall back to the defaults.
type Preferences struct {
	// Encoding names the text encoding of stdin and captured output.
	Encoding string
	// ShowCommand controls how the command appears in error messages.
	ShowCommand ShowCommand
	// Shell is the interpreter argv a command line is appended to,
	// "sh -c" (or "cmd /c" on Windows) when empty.
	Shell []string
	// Logger receives process lifecycle events. Nil disables logging.
	Logger *zerolog.Logger
	// Spawner creates processes. Nil means real processes via os/exec.
	Spawner Spawner
}

// DefaultPreferences returns the preferences used when none are given.
func DefaultPreferences() Preferences {
	return Preferences{}.withDefaults()
}

func (p Preferences) withDefaults() Preferences {
	if p.Encoding == "" {
		p.Encoding = DefaultEncoding
	}
	if len(p.Shell) == 0 {
		p.Shell = defaultShell()
	} else {
		p.Shell = slices.Clone(p.Shell)
	}
	if p.Logger == nil {
		nop := zerolog.Nop()
		p.Logger = &nop
	}
	if p.Spawner == nil {
		p.Spawner = NewExecSpawner()
	}
	return p
}
