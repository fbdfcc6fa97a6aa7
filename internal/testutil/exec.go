// Package testutil provides helpers shared across tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// RequirePosix skips the test on platforms without a POSIX shell.
func RequirePosix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test that needs a POSIX shell on Windows")
	}
}

// WriteScript writes an executable shell script named name into dir and
// returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + body
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write script %s: %v", path, err)
	}
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("failed to chmod script %s: %v", path, err)
	}
	return path
}

// RecordingEditor writes a fake editor that records its arguments, one per
// line, to the returned log file and exits with status.
func RecordingEditor(t *testing.T, dir, name string, status int) (editor, logFile string) {
	t.Helper()

	logFile = filepath.Join(dir, name+".args")
	body := "printf '%s\\n' \"$@\" > '" + logFile + "'\nexit " + strconv.Itoa(status)
	return WriteScript(t, dir, name, body), logFile
}

// ReadArgs returns the arguments recorded by a RecordingEditor.
func ReadArgs(t *testing.T, logFile string) []string {
	t.Helper()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read recorded args: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// PrependPath puts dir at the front of $PATH for the rest of the test.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// WriteFiles creates files under dir from a name to content map and returns
// their paths keyed by name.
func WriteFiles(t *testing.T, dir string, files map[string]string) map[string]string {
	t.Helper()

	paths := make(map[string]string, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
		paths[name] = path
	}
	return paths
}
