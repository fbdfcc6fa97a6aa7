package framework

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

const (
	dirPerm  = 0755
	filePerm = 0600
	execPerm = 0755
)

type TestEnvironment struct {
	t           *testing.T
	tmpDir      string
	vdiffBinary string
}

func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("e2e tests drive fake editors written as shell scripts")
	}

	env := &TestEnvironment{
		t:      t,
		tmpDir: t.TempDir(),
	}
	env.buildVdiff()
	return env
}

func (e *TestEnvironment) buildVdiff() {
	e.t.Helper()

	binary := filepath.Join(e.tmpDir, "vdiff")
	if prebuilt := os.Getenv("VDIFF_E2E_BINARY"); prebuilt != "" {
		binary = prebuilt
		if _, err := os.Stat(binary); err != nil {
			e.t.Fatalf("Specified vdiff binary not found: %s", binary)
		}
	} else {
		cmd := exec.Command("go", "build", "-o", binary, "./cmd/vdiff")
		cmd.Dir = e.findProjectRoot()
		if output, err := cmd.CombinedOutput(); err != nil {
			e.t.Fatalf("Failed to build vdiff binary: %v\nOutput: %s", err, output)
		}
	}

	binary, err := filepath.Abs(filepath.Clean(binary))
	if err != nil {
		e.t.Fatalf("Failed to get absolute path for binary: %v", err)
	}
	e.vdiffBinary = binary
}

func (e *TestEnvironment) findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			e.t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}

// CreateWorkspace returns an empty directory with its own configuration
// file location and home directory.
func (e *TestEnvironment) CreateWorkspace(name string) *Workspace {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory: %v", err)
	}
	return &Workspace{env: e, path: dir}
}

func (e *TestEnvironment) writeFile(path, content string, perm os.FileMode) {
	e.t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

type Workspace struct {
	env  *TestEnvironment
	path string
}

func (w *Workspace) Path() string {
	return w.path
}

func (w *Workspace) ConfigPath() string {
	return filepath.Join(w.path, "config.yml")
}

// WriteFile creates name in the workspace and returns its path.
func (w *Workspace) WriteFile(name, content string) string {
	path := filepath.Join(w.path, name)
	w.env.writeFile(path, content, filePerm)
	return path
}

func (w *Workspace) WriteConfig(content string) {
	w.env.writeFile(w.ConfigPath(), content, filePerm)
}

// UseEditor writes a configuration that runs the script body as the
// terminal editor.
func (w *Workspace) UseEditor(body string) {
	editor := filepath.Join(w.path, "fake-vimdiff")
	w.env.writeFile(editor, "#!/bin/sh\n"+body+"\n", execPerm)
	w.WriteConfig("editor:\n  gui: false\n  vimdiff: \"" + editor + "\"\n")
}

// UseRecordingEditor configures an editor that writes its arguments to
// EditorArgs and exits with status.
func (w *Workspace) UseRecordingEditor(status int) {
	w.UseEditor("printf '%s\\n' \"$@\" > '" + w.argsFile() + "'\nexit " + strconv.Itoa(status))
}

// EditorArgs returns the arguments recorded by the editor, or nil when it
// never ran.
func (w *Workspace) EditorArgs() []string {
	data, err := os.ReadFile(w.argsFile())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		w.env.t.Fatalf("Failed to read editor arguments: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func (w *Workspace) argsFile() string {
	return filepath.Join(w.path, "editor.args")
}

func (w *Workspace) HasFile(name string) bool {
	_, err := os.Stat(filepath.Join(w.path, name))
	return err == nil
}

func (w *Workspace) ReadFile(name string) string {
	content, err := os.ReadFile(filepath.Join(w.path, name))
	if err != nil {
		w.env.t.Fatalf("Failed to read file %s: %v", name, err)
	}
	return string(content)
}

func (w *Workspace) command(args ...string) *exec.Cmd {
	cmd := exec.Command(w.env.vdiffBinary, args...)
	cmd.Dir = w.path
	cmd.Env = append(filteredEnviron("DISPLAY", "VDIFF_CONFIG"),
		"HOME="+w.path,
		"VDIFF_CONFIG="+w.ConfigPath(),
	)
	return cmd
}

// RunVdiff runs vdiff in the workspace and returns its combined output.
func (w *Workspace) RunVdiff(args ...string) (string, error) {
	output, err := w.command(args...).CombinedOutput()
	return string(output), err
}

// StartVdiff starts vdiff in the background. The returned function sends
// sig and waits for it to exit.
func (w *Workspace) StartVdiff(args ...string) func(sig os.Signal) (string, error) {
	w.env.t.Helper()

	var output bytes.Buffer
	cmd := w.command(args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Start(); err != nil {
		w.env.t.Fatalf("Failed to start vdiff: %v", err)
	}

	return func(sig os.Signal) (string, error) {
		_ = cmd.Process.Signal(sig)
		timer := time.AfterFunc(10*time.Second, func() { _ = cmd.Process.Kill() })
		defer timer.Stop()
		err := cmd.Wait()
		return output.String(), err
	}
}

// WaitForFile polls until name exists in the workspace.
func (w *Workspace) WaitForFile(name string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if w.HasFile(name) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

// ExitCode returns the exit status carried by err, 0 for nil and -1 when
// err did not come from the process exiting.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func filteredEnviron(drop ...string) []string {
	var env []string
	for _, kv := range os.Environ() {
		keep := true
		for _, key := range drop {
			if strings.HasPrefix(kv, key+"=") {
				keep = false
				break
			}
		}
		if keep {
			env = append(env, kv)
		}
	}
	return env
}

// Interrupt is the signal a user sends with Ctrl-C.
var Interrupt os.Signal = syscall.SIGINT
