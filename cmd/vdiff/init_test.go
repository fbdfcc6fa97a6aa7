package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurdletech/vdiff/internal/config"
)

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Name)
	assert.Equal(t, "Initialize configuration file", cmd.Usage)
	assert.NotEmpty(t, cmd.Description)
	assert.NotNil(t, cmd.Action)
}

func TestInitCommand_Success(t *testing.T) {
	// Given: no configuration file yet
	path := filepath.Join(t.TempDir(), "vdiff", "config.yml")

	// When: running init
	stdout, _, err := runApp(t, "--config", path, "init")

	// Then: the default template is written and loads back
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created configuration file: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTemplate, string(data))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultGvimdiff, cfg.Editor.Gvimdiff)
}

func TestInitCommand_ConfigAlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("existing config"), 0o600))

	_, _, err := runApp(t, "--config", path, "init")

	assert.ErrorContains(t, err, "already exists")
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "existing config", string(data))
}
