package command

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Process is a live child started from a Command. Wait and Kill may be called
// from different goroutines.
type Process struct {
	id      string
	cmd     *Command
	proc    Proc
	pid     int
	started time.Time

	input    io.Reader
	feedOnce sync.Once
	feedErr  error

	reapOnce sync.Once

	mu     sync.Mutex
	reaped bool
	killed bool
	result *Result
	ioErr  error
}

func newProcess(c *Command, proc Proc) *Process {
	p := &Process{
		id:      uuid.NewString(),
		cmd:     c,
		proc:    proc,
		pid:     proc.Pid(),
		started: time.Now(),
	}
	c.prefs.Logger.Debug().
		Str("id", p.id).
		Int("pid", p.pid).
		Str("program", c.program.String()).
		Bool("shell", c.mode.UseShell).
		Msg("process started")
	return p
}

// ID returns an identifier unique to this handle.
func (p *Process) ID() string { return p.id }

// Pid returns the OS process id.
func (p *Process) Pid() int { return p.pid }

// Command returns the descriptor the process was started from.
func (p *Process) Command() *Command { return p.cmd }

// Running reports whether the child has not been reaped and the OS still
// knows about it.
func (p *Process) Running() bool {
	p.mu.Lock()
	reaped := p.reaped
	p.mu.Unlock()
	return !reaped && processAlive(p.pid)
}

// Wait blocks until the process terminates, drains captured output and
// applies the acceptance policy. An unacceptable status yields a
// *CommandError; a killed process yields ErrKilled. The Result is returned
// whenever the process was reaped, including alongside those errors.
//
// Repeated calls return the recorded outcome.
func (p *Process) Wait() (*Result, error) {
	p.reap()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ioErr != nil {
		return p.result, p.ioErr
	}
	if p.killed {
		return p.result, ErrKilled
	}

	r := p.result
	if !p.cmd.mode.Accept.Acceptable(r.Status) {
		return r, newCommandError(p.cmd.program, p.cmd.prefs.ShowCommand, r.Status, r.Stdout, r.Stderr)
	}
	return r, nil
}

// Kill terminates the process and reaps it without applying the acceptance
// policy. Killing a process that was already reaped, or was already killed,
// does nothing. A child that exited on its own before the signal reached it
// keeps its own status, and Wait applies the policy to it as usual.
func (p *Process) Kill() error {
	p.mu.Lock()
	if p.reaped || p.killed {
		p.mu.Unlock()
		return nil
	}
	p.killed = true
	p.mu.Unlock()

	if err := p.proc.Kill(); err != nil {
		p.mu.Lock()
		p.killed = false
		p.mu.Unlock()
		return fmt.Errorf("failed to kill process %d: %w", p.pid, err)
	}
	p.reap()

	p.mu.Lock()
	killed := p.killed
	p.mu.Unlock()
	if killed {
		p.cmd.prefs.Logger.Debug().
			Str("id", p.id).
			Int("pid", p.pid).
			Msg("process killed")
	}
	return nil
}

// feed writes the pending input to the child and closes its stdin. It runs
// at most once.
func (p *Process) feed() error {
	p.feedOnce.Do(func() {
		p.feedErr = p.writeInput()
	})
	return p.feedErr
}

func (p *Process) writeInput() error {
	w := p.proc.Stdin()
	if w == nil {
		return nil
	}

	var err error
	if p.input != nil {
		_, err = io.Copy(w, p.input)
	}
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	// A child that exits without reading all of its input is not a failure.
	if isClosedPipe(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to write stdin of process %d: %w", p.pid, err)
	}
	return nil
}

// reap feeds stdin and drains the capture pipes concurrently, then collects
// the exit status. It runs at most once.
func (p *Process) reap() {
	p.reapOnce.Do(func() {
		var stdout, stderr bytes.Buffer
		var g errgroup.Group
		g.Go(p.feed)
		if r := p.proc.Stdout(); r != nil {
			g.Go(drain(&stdout, r))
		}
		if r := p.proc.Stderr(); r != nil {
			g.Go(drain(&stderr, r))
		}
		ioErr := g.Wait()

		status, waitErr := p.proc.Wait()
		elapsed := time.Since(p.started)

		outText, outErr := decodeBytes(p.cmd.enc, stdout.Bytes())
		errText, errErr := decodeBytes(p.cmd.enc, stderr.Bytes())

		p.mu.Lock()
		p.reaped = true
		p.result = &Result{
			ID:       p.id,
			Pid:      p.pid,
			Status:   status,
			Stdout:   outText,
			Stderr:   errText,
			Duration: elapsed,
		}
		p.ioErr = errors.Join(waitErr, ioErr, outErr, errErr)
		if p.killed && waitErr == nil && !killedStatus(status) {
			p.killed = false
		}
		killed := p.killed
		p.mu.Unlock()

		p.cmd.prefs.Logger.Debug().
			Str("id", p.id).
			Int("pid", p.pid).
			Int("status", status).
			Bool("killed", killed).
			Dur("duration", elapsed).
			Msg("process exited")
	})
}

func drain(dst *bytes.Buffer, r io.ReadCloser) func() error {
	return func() error {
		_, err := io.Copy(dst, r)
		if closeErr := r.Close(); err == nil && !isClosedPipe(closeErr) {
			err = closeErr
		}
		if isClosedPipe(err) {
			return nil
		}
		return err
	}
}

func isClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}
