package command

import (
	"io"
	"time"
)

// Result represents the outcome of a finished process
type Result struct {
	ID       string        // Handle identifier, unique per Start
	Pid      int           // OS process id
	Status   int           // Exit status; -N when terminated by signal N
	Stdout   string        // Captured standard output, if requested
	Stderr   string        // Captured standard error, if requested
	Duration time.Duration // Time from spawn to reap
}

// SpawnRequest describes one process to create
type SpawnRequest struct {
	Name string   // Executable (looked up in PATH when it has no separator)
	Args []string // Arguments, not including Name
	Dir  string   // Optional working directory
	Env  []string // Extra KEY=value pairs appended to the inherited environment

	// Pipes to open. A stream without a pipe is inherited from the caller.
	Stdin  bool
	Stdout bool
	Stderr bool
}

// Spawner abstracts process creation so the lifecycle logic can be tested
// without real children
type Spawner interface {
	Spawn(req SpawnRequest) (Proc, error)
}

// Proc is a live child created by a Spawner. Stream accessors return nil
// unless the matching pipe was requested.
type Proc interface {
	Pid() int
	Stdin() io.WriteCloser
	Stdout() io.ReadCloser
	Stderr() io.ReadCloser
	// Wait blocks until the child exits and returns its status. The error is
	// non-nil only when the status could not be collected.
	Wait() (int, error)
	// Kill terminates the child. Killing a child that has already exited is
	// not an error.
	Kill() error
}
