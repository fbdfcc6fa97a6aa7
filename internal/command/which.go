package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Access is the test a Which candidate must pass.
type Access int

const (
	// AccessExecutable keeps candidates the caller may execute.
	AccessExecutable Access = iota
	// AccessExists keeps candidates that exist.
	AccessExists
	// AccessReadable keeps candidates the caller may read.
	AccessReadable
	// AccessWritable keeps candidates the caller may write.
	AccessWritable
)

// ParseAccess maps "x", "e", "r" and "w" (or their long names) to an Access.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "x", "exec", "executable":
		return AccessExecutable, nil
	case "e", "exists":
		return AccessExists, nil
	case "r", "read", "readable":
		return AccessReadable, nil
	case "w", "write", "writable":
		return AccessWritable, nil
	default:
		return AccessExecutable, fmt.Errorf("invalid access mode %q, must be one of x, e, r, w", s)
	}
}

func (a Access) String() string {
	switch a {
	case AccessExists:
		return "exists"
	case AccessReadable:
		return "readable"
	case AccessWritable:
		return "writable"
	default:
		return "executable"
	}
}

// WhichOption customises a Which lookup.
type WhichOption func(*whichOptions)

type whichOptions struct {
	path    string
	hasPath bool
	access  Access
}

// WithSearchPath searches path, a list of directories separated by
// os.PathListSeparator, instead of $PATH.
func WithSearchPath(path string) WhichOption {
	return func(o *whichOptions) {
		o.path = path
		o.hasPath = true
	}
}

// WithAccess sets the test each candidate must pass.
func WithAccess(access Access) WhichOption {
	return func(o *whichOptions) {
		o.access = access
	}
}

// Which returns every directory/name candidate on the search path that
// passes the access test, in search path order. An empty result means the
// name was not found.
func Which(name string, opts ...WhichOption) []string {
	var o whichOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasPath {
		o.path = os.Getenv("PATH")
	}
	if name == "" || o.path == "" {
		return nil
	}

	var found []string
	for _, dir := range filepath.SplitList(o.path) {
		candidate := filepath.Join(dir, name)
		if accessible(candidate, o.access) {
			found = append(found, candidate)
		}
	}
	return found
}
