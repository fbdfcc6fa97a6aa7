package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common error messages with helpful context and suggestions

// Usage Errors
func WrongFileCount(got int) error {
	msg := fmt.Sprintf(`vdiff compares 2 to 4 files, got %d

Usage: vdiff [options] <file1> <file2> [<file3> [<file4>]]

Examples:
  • vdiff old.txt new.txt
  • vdiff --vim base.go mine.go theirs.go`, got)
	return errors.New(msg)
}

func CommandRequired() error {
	msg := `a command to run is required

Usage: vdiff run [options] -- <command> [args...]

Examples:
  • vdiff run -- ls -l
  • vdiff run --mode OE -- make test
  • vdiff run --shell --accept '*' -- 'grep -c TODO *.go'`
	return errors.New(msg)
}

func NameRequired() error {
	msg := `an executable name is required

Usage: vdiff which [--path <dirs>] [--access x|r|w|e] <name>

Tip: Run 'vdiff which gvimdiff' to see which editor vdiff would find`
	return errors.New(msg)
}

func InvalidMode(spec string, parseError error) error {
	msg := fmt.Sprintf(`invalid mode '%s'

Mode characters:
  • s/S  run directly / through the shell
  • o/O  leave / capture stdout
  • e/E  leave / capture stderr
  • w/W  return at once / wait
  • a trailing acceptance spec: '*', 'N', '<=N', '=N', 'N,' or 'M,N,...'`, spec)

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

// Editor Errors
func EditorNotFound(editor string, searched []string) error {
	msg := fmt.Sprintf("editor '%s' could not be started", editor)

	if len(searched) > 0 {
		msg += "\n\nFound on PATH but not runnable:"
		for _, path := range searched {
			msg += fmt.Sprintf("\n  • %s", path)
		}
	} else {
		msg += "\n\nCause: Editor is not installed or not on PATH"
	}

	msg += `

Solutions:
  • Install vim with GUI support (gvim)
  • Set 'editor.vimdiff' or 'editor.gvimdiff' in the vdiff configuration
  • Use '--vim' to force the terminal editor`
	return errors.New(msg)
}

func EditorFailed(editor string, originalError error) error {
	msg := fmt.Sprintf("editor '%s' exited with an error", editor)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "unexpected exit status") {
		msg += `

Cause: The editor reported a failure on exit
Tip: Run the editor command manually to see its messages`
	} else if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check file permissions
  • Ensure the editor is executable`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

func KilledByUser() error {
	return errors.New("killed by user")
}

// Configuration Errors
func ConfigLoadFailed(configPath string, parseError error) error {
	msg := fmt.Sprintf("failed to load configuration from '%s'", configPath)

	parseErrorStr := parseError.Error()
	if strings.Contains(parseErrorStr, "yaml") || strings.Contains(parseErrorStr, "unmarshal") {
		msg += `

Cause: YAML syntax error in configuration file
Solutions:
  • Check YAML syntax and indentation
  • Validate YAML at https://yamllint.com/
  • Run 'vdiff init' to recreate the configuration`
	} else if strings.Contains(parseErrorStr, "invalid configuration") {
		msg += `

Cause: A configuration value is out of range
Tip: Compare your file with the template written by 'vdiff init'`
	} else if strings.Contains(parseErrorStr, "permission denied") {
		msg += fmt.Sprintf(`

Cause: Permission denied reading configuration file
Solution: Check file permissions with 'ls -la %s'`, configPath)
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

func ConfigAlreadyExists(configPath string) error {
	msg := fmt.Sprintf(`configuration file already exists: %s

Options:
  • Edit the existing file manually
  • Delete it and run 'vdiff init' again`, configPath)
	return errors.New(msg)
}

// File System Errors
func FileAccessFailed(operation, path string, originalError error) error {
	msg := fmt.Sprintf("failed to %s file: %s", operation, path)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check file permissions
  • Ensure you own the file`
	} else if strings.Contains(errorStr, "no such file or directory") {
		msg += `

Cause: File does not exist
Solution: Check the path spelling`
	} else if strings.Contains(errorStr, "is a directory") {
		msg += `

Cause: Path is a directory
Tip: vdiff compares files, not directories`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}
