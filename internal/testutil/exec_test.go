package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingEditor(t *testing.T) {
	RequirePosix(t)

	// Given: a fake editor that exits with 3
	dir := t.TempDir()
	editor, logFile := RecordingEditor(t, dir, "fake-vim", 3)

	// When: running it with arguments
	err := exec.Command(editor, "-f", "a file.txt").Run()

	// Then: it exits with the status and records each argument
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, []string{"-f", "a file.txt"}, ReadArgs(t, logFile))
}

func TestPrependPath(t *testing.T) {
	RequirePosix(t)

	dir := t.TempDir()
	WriteScript(t, dir, "vdiff-testutil-tool", "exit 0")
	PrependPath(t, dir)

	path, err := exec.LookPath("vdiff-testutil-tool")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vdiff-testutil-tool"), path)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	paths := WriteFiles(t, dir, map[string]string{"a.txt": "one", "b.txt": "two"})

	data, err := os.ReadFile(paths["b.txt"])
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	assert.Len(t, paths, 2)
}
