package command

import "io"

// Run runs program directly and waits for it, without capturing output.
// Only status 0 is accepted unless WithAccept says otherwise.
func Run(program Program, stdin io.Reader, opts ...Option) (int, error) {
	return foreground(program, "sW", stdin, opts)
}

// Sh is Run through the interpreter. An Argv program is joined into one line.
func Sh(program Program, stdin io.Reader, opts ...Option) (int, error) {
	return foreground(program, "SW", stdin, opts)
}

// Bg starts program directly and returns its pid without waiting. Input, if
// any, is written and stdin closed before Bg returns. The child is reaped in
// the background.
func Bg(program Program, stdin io.Reader, opts ...Option) (int, error) {
	return background(program, "sw", stdin, opts)
}

// ShBg is Bg through the interpreter.
func ShBg(program Program, stdin io.Reader, opts ...Option) (int, error) {
	return background(program, "Sw", stdin, opts)
}

func foreground(program Program, mode string, stdin io.Reader, opts []Option) (int, error) {
	c, err := New(program, mode, opts...)
	if err != nil {
		return 0, err
	}
	p, err := c.Start(stdin)
	if p == nil {
		return 0, err
	}
	r, err := p.Wait()
	if r == nil {
		return 0, err
	}
	return r.Status, err
}

func background(program Program, mode string, stdin io.Reader, opts []Option) (int, error) {
	c, err := New(program, mode, opts...)
	if err != nil {
		return 0, err
	}
	p, err := c.Start(stdin)
	if p == nil {
		return 0, err
	}
	go p.reap()
	return p.Pid(), err
}
