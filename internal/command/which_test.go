package command

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func searchPath(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}

func TestWhich(t *testing.T) {
	t.Run("returns matches in search path order", func(t *testing.T) {
		// Given: a name present in the first and third of three directories
		first, second, third := t.TempDir(), t.TempDir(), t.TempDir()
		a := writeFile(t, first, "tool", 0o755)
		b := writeFile(t, third, "tool", 0o755)

		// When: looking it up
		found := Which("tool", WithSearchPath(searchPath(first, second, third)), WithAccess(AccessExists))

		// Then: exactly those two paths are returned, in order
		assert.Equal(t, []string{a, b}, found)
	})

	t.Run("order follows the search path, not discovery", func(t *testing.T) {
		first, second := t.TempDir(), t.TempDir()
		a := writeFile(t, first, "tool", 0o755)
		b := writeFile(t, second, "tool", 0o755)

		found := Which("tool", WithSearchPath(searchPath(second, first)), WithAccess(AccessExists))

		assert.Equal(t, []string{b, a}, found)
	})

	t.Run("no match is an empty result", func(t *testing.T) {
		found := Which("vdiff-absent", WithSearchPath(searchPath(t.TempDir(), t.TempDir())))
		assert.Empty(t, found)
	})

	t.Run("empty search path", func(t *testing.T) {
		assert.Empty(t, Which("sh", WithSearchPath("")))
	})

	t.Run("defaults to PATH", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "vdiff-path-tool", 0o755)
		t.Setenv("PATH", dir)

		found := Which("vdiff-path-tool", WithAccess(AccessExists))

		assert.Equal(t, []string{path}, found)
	})
}

func TestWhich_Executable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission bit test on Windows")
	}

	// Given: an executable and a plain file with the same name
	bin, data := t.TempDir(), t.TempDir()
	exe := writeFile(t, bin, "tool", 0o755)
	writeFile(t, data, "tool", 0o644)
	path := searchPath(data, bin)

	// When: looking up with the default and the exists filter
	executables := Which("tool", WithSearchPath(path))
	existing := Which("tool", WithSearchPath(path), WithAccess(AccessExists))
	readable := Which("tool", WithSearchPath(path), WithAccess(AccessReadable))

	// Then: only the executable passes the default filter
	assert.Equal(t, []string{exe}, executables)
	assert.Len(t, existing, 2)
	assert.Len(t, readable, 2)
}

func TestParseAccess(t *testing.T) {
	tests := map[string]Access{
		"":           AccessExecutable,
		"x":          AccessExecutable,
		"e":          AccessExists,
		"r":          AccessReadable,
		"w":          AccessWritable,
		"executable": AccessExecutable,
		"Readable":   AccessReadable,
	}
	for in, want := range tests {
		got, err := ParseAccess(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAccess("rw")
	assert.Error(t, err)
	assert.Equal(t, "writable", AccessWritable.String())
}
