package command

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"syscall"
)

// defaultShell returns the interpreter argv a command line is appended to.
func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/c"}
	}
	return []string{"sh", "-c"}
}

// execSpawner implements Spawner using os/exec
type execSpawner struct{}

// NewExecSpawner creates a Spawner that starts real processes
func NewExecSpawner() Spawner {
	return execSpawner{}
}

// Spawn starts the process described by req
func (execSpawner) Spawn(req SpawnRequest) (Proc, error) {
	// #nosec G204 - running caller-supplied commands is the purpose of this package
	cmd := exec.Command(req.Name, req.Args...)
	if req.Dir != "" {
		cmd.Dir = req.Dir
	}
	if len(req.Env) > 0 {
		cmd.Env = append(os.Environ(), req.Env...)
	}

	p := &execProc{cmd: cmd}
	if err := p.connect(req); err != nil {
		p.closePipes()
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

type execProc struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// connect opens the requested pipes and hands every other stream to the child
// as-is.
func (p *execProc) connect(req SpawnRequest) error {
	var err error
	if req.Stdin {
		if p.stdin, err = p.cmd.StdinPipe(); err != nil {
			return err
		}
	} else {
		p.cmd.Stdin = os.Stdin
	}
	if req.Stdout {
		if p.stdout, err = p.cmd.StdoutPipe(); err != nil {
			return err
		}
	} else {
		p.cmd.Stdout = os.Stdout
	}
	if req.Stderr {
		if p.stderr, err = p.cmd.StderrPipe(); err != nil {
			return err
		}
	} else {
		p.cmd.Stderr = os.Stderr
	}
	return nil
}

func (p *execProc) closePipes() {
	for _, c := range []io.Closer{p.stdin, p.stdout, p.stderr} {
		if c != nil {
			_ = c.Close()
		}
	}
}

func (p *execProc) Pid() int              { return p.cmd.Process.Pid }
func (p *execProc) Stdin() io.WriteCloser { return p.stdin }
func (p *execProc) Stdout() io.ReadCloser { return p.stdout }
func (p *execProc) Stderr() io.ReadCloser { return p.stderr }

func (p *execProc) Wait() (int, error) {
	err := p.cmd.Wait()
	state := p.cmd.ProcessState
	if state == nil {
		return -1, err
	}

	status := state.ExitCode()
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		status = -int(ws.Signal())
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return status, err
	}
	return status, nil
}

func (p *execProc) Kill() error {
	err := p.cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
