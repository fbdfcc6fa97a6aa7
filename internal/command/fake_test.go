package command

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"syscall"
)

type fakeSpawner struct {
	mu       sync.Mutex
	requests []SpawnRequest
	proc     *fakeProc
	err      error
}

func (s *fakeSpawner) Spawn(req SpawnRequest) (Proc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	s.proc.attach(req)
	return s.proc, nil
}

func (s *fakeSpawner) lastRequest() SpawnRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

// fakeProc exits with status as soon as it is waited on, unless it was built
// by newRunningProc, in which case Wait blocks until Kill.
type fakeProc struct {
	pid      int
	status   int
	stdout   string
	stderr   string
	waitErr  error
	stdinErr error

	mu       sync.Mutex
	in       *fakeStdin
	out      io.ReadCloser
	errOut   io.ReadCloser
	exited   chan struct{}
	exitOnce sync.Once
	kills    int
	waits    int
}

func newExitedProc(status int, stdout, stderr string) *fakeProc {
	p := newRunningProc()
	p.status = status
	p.stdout = stdout
	p.stderr = stderr
	p.exit()
	return p
}

func newRunningProc() *fakeProc {
	return &fakeProc{pid: 4242, exited: make(chan struct{})}
}

func (p *fakeProc) attach(req SpawnRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if req.Stdin {
		p.in = &fakeStdin{writeErr: p.stdinErr}
	}
	if req.Stdout {
		p.out = io.NopCloser(strings.NewReader(p.stdout))
	}
	if req.Stderr {
		p.errOut = io.NopCloser(strings.NewReader(p.stderr))
	}
}

func (p *fakeProc) exit() {
	p.exitOnce.Do(func() { close(p.exited) })
}

func (p *fakeProc) Pid() int { return p.pid }

func (p *fakeProc) Stdin() io.WriteCloser {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.in == nil {
		return nil
	}
	return p.in
}

func (p *fakeProc) Stdout() io.ReadCloser { return p.out }
func (p *fakeProc) Stderr() io.ReadCloser { return p.errOut }

func (p *fakeProc) Wait() (int, error) {
	<-p.exited
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return p.status, p.waitErr
}

func (p *fakeProc) Kill() error {
	p.mu.Lock()
	p.kills++
	select {
	case <-p.exited:
		// already exited; the signal changes nothing
	default:
		p.status = -int(syscall.SIGKILL)
	}
	p.mu.Unlock()
	p.exit()
	return nil
}

func (p *fakeProc) counts() (kills, waits int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kills, p.waits
}

type fakeStdin struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	closed   bool
	writeErr error
}

func (w *fakeStdin) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.buf.Write(b)
}

func (w *fakeStdin) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeStdin) written() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String(), w.closed
}

func fakePrefs(s *fakeSpawner) Preferences {
	return Preferences{Spawner: s, Shell: []string{"sh", "-c"}}
}
