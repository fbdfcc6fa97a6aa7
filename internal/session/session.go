// Package session drives an editor over two to four files.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/caarlos0/go-shellwords"
	"github.com/rs/zerolog"

	"github.com/nurdletech/vdiff/internal/command"
	"github.com/nurdletech/vdiff/internal/config"
	vdiffErrors "github.com/nurdletech/vdiff/internal/errors"
)

const (
	MinFiles = 2
	MaxFiles = 4

	// Start returns at once so the handle is held before waiting; statuses
	// up to 1 are accepted.
	editorMode = "w1"
)

// Session compares and edits a set of files
type Session struct {
	files  []string
	config *config.Config
	useGUI *bool
	prefs  command.Preferences
	log    zerolog.Logger
	getenv func(string) string

	mu        sync.Mutex
	editor    *command.Process
	cancelled bool
}

// Option customises a Session
type Option func(*Session)

// WithGUI overrides the configured GUI preference
func WithGUI(gui bool) Option {
	return func(s *Session) {
		s.useGUI = &gui
	}
}

// WithPreferences sets the preferences the editor command is built with
func WithPreferences(prefs command.Preferences) Option {
	return func(s *Session) {
		s.prefs = prefs
	}
}

// WithLogger sets the logger for warnings and cleanup failures
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

// WithGetenv replaces os.Getenv for the $DISPLAY lookup
func WithGetenv(getenv func(string) string) Option {
	return func(s *Session) {
		s.getenv = getenv
	}
}

// New creates a session over files, which must number between MinFiles and
// MaxFiles.
func New(cfg *config.Config, files []string, opts ...Option) (*Session, error) {
	if len(files) < MinFiles || len(files) > MaxFiles {
		return nil, vdiffErrors.WrongFileCount(len(files))
	}
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Session{
		files:  append([]string(nil), files...),
		config: cfg,
		log:    zerolog.Nop(),
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Files returns the files of the session
func (s *Session) Files() []string {
	return append([]string(nil), s.files...)
}

// Differ reports whether the first two files have different contents
func (s *Session) Differ() (bool, error) {
	left, err := os.ReadFile(s.files[0])
	if err != nil {
		return false, vdiffErrors.FileAccessFailed("read", s.files[0], err)
	}
	right, err := os.ReadFile(s.files[1])
	if err != nil {
		return false, vdiffErrors.FileAccessFailed("read", s.files[1], err)
	}
	return !bytes.Equal(left, right), nil
}

// EditorArgv returns the editor command line for the session's files
func (s *Session) EditorArgv() ([]string, error) {
	gui := s.config.PreferGUI()
	if s.useGUI != nil {
		gui = *s.useGUI
	}

	line := s.config.Editor.Vimdiff
	if gui {
		if s.getenv("DISPLAY") == "" {
			s.log.Warn().Msg("$DISPLAY not set, ignoring request for gvim")
		} else {
			line = s.config.Editor.Gvimdiff
		}
	}

	argv, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("invalid editor command %q: empty", line)
	}

	if script := s.config.Editor.Script; script != "" {
		argv = append(argv, "-S", expandHome(script))
	}
	return append(argv, s.files...), nil
}

// Edit opens the files in the editor and waits for it to exit
func (s *Session) Edit() error {
	argv, err := s.EditorArgv()
	if err != nil {
		return err
	}

	cmd, err := command.New(command.Argv(argv...), editorMode, command.WithPreferences(s.prefs))
	if err != nil {
		return err
	}

	proc, err := cmd.Start(nil)
	if err != nil {
		var launchErr *command.LaunchError
		if errors.As(err, &launchErr) {
			return vdiffErrors.EditorNotFound(argv[0], command.Which(argv[0], command.WithAccess(command.AccessExists)))
		}
		return err
	}

	s.mu.Lock()
	s.editor = proc
	cancelled := s.cancelled
	s.mu.Unlock()
	var removeErr error
	if cancelled {
		_ = proc.Kill()
		removeErr = s.removeSwapFiles()
	}

	_, err = proc.Wait()
	switch {
	case err == nil:
		return removeErr
	case errors.Is(err, command.ErrKilled):
		return errors.Join(vdiffErrors.KilledByUser(), removeErr)
	default:
		return vdiffErrors.EditorFailed(argv[0], err)
	}
}

// Cleanup kills a running editor and removes the swap files it leaves next
// to each file. Before Edit has started the editor it only marks the session
// cancelled; Edit then kills the editor and removes the swap files itself.
func (s *Session) Cleanup() error {
	s.mu.Lock()
	s.cancelled = true
	editor := s.editor
	s.mu.Unlock()

	if editor == nil {
		return nil
	}

	var errs []error
	if err := editor.Kill(); err != nil {
		errs = append(errs, err)
	}
	if err := s.removeSwapFiles(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// removeSwapFiles deletes the editor swap file of every file, ignoring the
// ones that do not exist.
func (s *Session) removeSwapFiles() error {
	var errs []error
	for _, file := range s.files {
		swap := SwapFile(file)
		err := os.Remove(swap)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		s.log.Error().Err(err).Str("file", swap).Msg("failed to remove swap file")
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SwapFile returns the path of the editor swap file for path
func SwapFile(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".swp")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
