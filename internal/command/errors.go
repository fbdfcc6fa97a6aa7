package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

var (
	// ErrInvalidAccept marks an exit-status acceptance spec that cannot be parsed.
	ErrInvalidAccept = errors.New("invalid acceptance spec")
	// ErrCaptureRequiresWait marks a descriptor that captures output without waiting.
	ErrCaptureRequiresWait = errors.New("capturing output requires waiting for termination")
	// ErrUnknownEncoding marks a text encoding name that is not recognised.
	ErrUnknownEncoding = errors.New("unknown text encoding")
	// ErrEmptyProgram marks a descriptor with nothing to run.
	ErrEmptyProgram = errors.New("no command given")
	// ErrLaunch is wrapped by every LaunchError.
	ErrLaunch = errors.New("process could not be started")
	// ErrUnacceptableStatus is wrapped by every CommandError.
	ErrUnacceptableStatus = errors.New("unacceptable exit status")
	// ErrKilled is returned by Wait on a process that was killed.
	ErrKilled = errors.New("process was killed")
)

// ShowCommand selects how much of the command appears in error messages.
type ShowCommand int

const (
	// ShowCommandShort shows only the first token.
	ShowCommandShort ShowCommand = iota
	// ShowCommandOff leaves the command out.
	ShowCommandOff
	// ShowCommandFull shows the whole command line.
	ShowCommandFull
)

// ParseShowCommand maps "off", "short" and "full" (and the boolean spellings
// "false"/"true") to a ShowCommand.
func ParseShowCommand(s string) (ShowCommand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "false", "none", "no":
		return ShowCommandOff, nil
	case "", "short", "true", "yes":
		return ShowCommandShort, nil
	case "full":
		return ShowCommandFull, nil
	default:
		return ShowCommandShort, fmt.Errorf("invalid show_command %q, must be one of off, short, full", s)
	}
}

func (s ShowCommand) String() string {
	switch s {
	case ShowCommandOff:
		return "off"
	case ShowCommandFull:
		return "full"
	default:
		return "short"
	}
}

// ConfigError reports a descriptor that cannot be built: a bad mode string or
// acceptance spec, an unknown encoding, or capture requested without waiting.
type ConfigError struct {
	Spec string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Spec == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Spec)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LaunchError reports that the operating system refused to create the process.
type LaunchError struct {
	Program Program
	// Path is the file the OS complained about, when known.
	Path string
	// Message is the OS error text.
	Message string
	Err     error

	show ShowCommand
}

func (e *LaunchError) Error() string { return e.Format(e.show) }

// Format renders the error with the requested command display.
func (e *LaunchError) Format(show ShowCommand) string {
	return joinMessage(e.Program.display(show), e.Path, e.Message)
}

func (e *LaunchError) Unwrap() []error { return []error{ErrLaunch, e.Err} }

// CommandError reports a process that ran to completion with an exit status
// the acceptance policy rejects.
type CommandError struct {
	Program Program
	Status  int
	// Message is the trimmed standard error text when it was captured and
	// non-empty, otherwise a generic description of the status.
	Message string
	Stdout  string
	Stderr  string

	show ShowCommand
}

func (e *CommandError) Error() string { return e.Format(e.show) }

// Format renders the error with the requested command display.
func (e *CommandError) Format(show ShowCommand) string {
	return joinMessage(e.Program.display(show), "", e.Message)
}

func (e *CommandError) Unwrap() error { return ErrUnacceptableStatus }

func newLaunchError(program Program, show ShowCommand, err error) *LaunchError {
	le := &LaunchError{Program: program, Message: err.Error(), Err: err, show: show}

	var execErr *exec.Error
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &execErr):
		le.Path = execErr.Name
		le.Message = execErr.Err.Error()
	case errors.As(err, &pathErr):
		le.Path = pathErr.Path
		le.Message = pathErr.Err.Error()
	}
	return le
}

func newCommandError(program Program, show ShowCommand, status int, stdout, stderr string) *CommandError {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = fmt.Sprintf("unexpected exit status (%d)", status)
	}
	return &CommandError{
		Program: program,
		Status:  status,
		Message: msg,
		Stdout:  stdout,
		Stderr:  stderr,
		show:    show,
	}
}

func joinMessage(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ": ")
}
