package command

import (
	"io"
	"slices"

	"golang.org/x/text/encoding"
)

// Command describes what to run and how. It is read-only once built by New
// and may be started any number of times, concurrently, each Start producing
// its own Process.
type Command struct {
	program  Program
	mode     Mode
	argv     []string
	encName  string
	enc      encoding.Encoding
	dir      string
	env      []string
	prefs    Preferences
	quoteArg bool
}

// Option customises a Command built by New.
type Option func(*options)

type options struct {
	accept   *AcceptPolicy
	encoding string
	prefs    Preferences
	dir      string
	env      []string
	quote    bool
}

// WithAccept sets the acceptance policy, overriding any acceptance spec at
// the end of the mode string.
func WithAccept(policy AcceptPolicy) Option {
	return func(o *options) {
		o.accept = &policy
	}
}

// WithEncoding sets the text encoding of stdin and captured output.
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithPreferences replaces the default Preferences.
func WithPreferences(prefs Preferences) Option {
	return func(o *options) {
		o.prefs = prefs
	}
}

// WithDir runs the process in dir.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithEnv appends KEY=value pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithQuotedTokens shell-quotes each token of an Argv program before it is
// joined into an interpreter line.
func WithQuotedTokens() Option {
	return func(o *options) {
		o.quote = true
	}
}

// New builds a Command from a program and a mode string (see Mode.Apply).
func New(program Program, mode string, opts ...Option) (*Command, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	prefs := o.prefs.withDefaults()

	if program.IsEmpty() {
		return nil, &ConfigError{Err: ErrEmptyProgram}
	}

	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if o.accept != nil {
		m.Accept = *o.accept
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	encName := o.encoding
	if encName == "" {
		encName = prefs.Encoding
	}
	enc, err := lookupEncoding(encName)
	if err != nil {
		return nil, err
	}

	c := &Command{
		program:  program,
		mode:     m,
		encName:  encName,
		enc:      enc,
		dir:      o.dir,
		env:      slices.Clone(o.env),
		prefs:    prefs,
		quoteArg: o.quote,
	}
	c.argv = c.resolveArgv()
	return c, nil
}

// resolveArgv turns the program into the argv handed to the spawner. Under
// interpreter use a token program is joined into one line here, once.
func (c *Command) resolveArgv() []string {
	if c.mode.UseShell {
		return append(slices.Clone(c.prefs.Shell), c.program.join(c.quoteArg))
	}
	return c.program.Tokens()
}

// Program returns the program as given to New.
func (c *Command) Program() Program { return c.program }

// Mode returns the resolved mode flags and acceptance policy.
func (c *Command) Mode() Mode { return c.mode }

// UseShell reports whether the program runs through the interpreter.
func (c *Command) UseShell() bool { return c.mode.UseShell }

// CaptureStdout reports whether standard output is captured.
func (c *Command) CaptureStdout() bool { return c.mode.CaptureStdout }

// CaptureStderr reports whether standard error is captured.
func (c *Command) CaptureStderr() bool { return c.mode.CaptureStderr }

// Waits reports whether Start blocks until the process terminates.
func (c *Command) Waits() bool { return c.mode.Wait }

// Accept returns the acceptance policy.
func (c *Command) Accept() AcceptPolicy { return c.mode.Accept }

// Encoding returns the name of the text encoding.
func (c *Command) Encoding() string { return c.encName }

// Argv returns the argument vector handed to the spawner.
func (c *Command) Argv() []string { return slices.Clone(c.argv) }

func (c *Command) String() string { return c.program.String() }

// Start launches the process. A nil stdin leaves the child connected to the
// caller's standard input; otherwise stdin is read to the end, transcoded
// and written to the child, and the pipe closed.
//
// When the Command waits, Start also waits and returns the outcome of
// Process.Wait alongside the handle. Otherwise it returns once the input has
// been written.
func (c *Command) Start(stdin io.Reader) (*Process, error) {
	req := SpawnRequest{
		Name:   c.argv[0],
		Args:   c.argv[1:],
		Dir:    c.dir,
		Env:    c.env,
		Stdin:  stdin != nil,
		Stdout: c.mode.CaptureStdout,
		Stderr: c.mode.CaptureStderr,
	}

	proc, err := c.prefs.Spawner.Spawn(req)
	if err != nil {
		launchErr := newLaunchError(c.program, c.prefs.ShowCommand, err)
		c.prefs.Logger.Debug().
			Err(err).
			Str("program", c.program.String()).
			Msg("process failed to start")
		return nil, launchErr
	}

	p := newProcess(c, proc)
	if stdin != nil {
		p.input = encodeReader(c.enc, stdin)
	}

	if !c.mode.Wait {
		return p, p.feed()
	}

	_, err = p.Wait()
	return p, err
}
