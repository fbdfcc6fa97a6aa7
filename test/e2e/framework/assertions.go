package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertOutputContains(t *testing.T, output, expected string) {
	t.Helper()
	assert.Contains(t, output, expected, "Expected output containing '%s', got: %s", expected, output)
}

func AssertHelpfulError(t *testing.T, output string) {
	t.Helper()

	helpfulElements := []string{
		"Solutions:",
		"Solution:",
		"Cause:",
		"Tip:",
		"•",
		"Examples:",
		"Usage:",
	}

	for _, element := range helpfulElements {
		if strings.Contains(output, element) {
			return
		}
	}
	t.Errorf("Error message does not appear to be helpful. Got: %s", output)
}

func AssertExitCode(t *testing.T, err error, expected int) {
	t.Helper()
	assert.Equal(t, expected, ExitCode(err), "Expected exit status %d, got error: %v", expected, err)
}

func AssertEditorArgs(t *testing.T, ws *Workspace, expected []string) {
	t.Helper()
	assert.Equal(t, expected, ws.EditorArgs(), "Unexpected editor arguments")
}

func AssertEditorNotRun(t *testing.T, ws *Workspace) {
	t.Helper()
	assert.Nil(t, ws.EditorArgs(), "Expected the editor not to run")
}

func AssertFileNotExists(t *testing.T, ws *Workspace, name string) {
	t.Helper()
	assert.False(t, ws.HasFile(name), "Expected file '%s' not to exist", name)
}
