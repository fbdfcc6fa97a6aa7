package command

// Mode holds the switches a mode string controls.
type Mode struct {
	UseShell      bool
	CaptureStdout bool
	CaptureStderr bool
	Wait          bool
	Accept        AcceptPolicy
}

// DefaultMode runs directly, captures nothing, waits, and accepts only 0.
func DefaultMode() Mode {
	return Mode{Wait: true}
}

// ParseMode applies spec to DefaultMode.
func ParseMode(spec string) (Mode, error) {
	return DefaultMode().Apply(spec)
}

// Apply reads spec left to right on top of m:
//
//	s/S  run directly / through the interpreter
//	o/O  leave / capture stdout
//	e/E  leave / capture stderr
//	w/W  return at once / wait for termination
//
// The first other character starts an acceptance spec (see ParseAccept) that
// runs to the end of the string. Without one, m.Accept is kept.
func (m Mode) Apply(spec string) (Mode, error) {
	for i, c := range spec {
		switch c {
		case 's':
			m.UseShell = false
		case 'S':
			m.UseShell = true
		case 'o':
			m.CaptureStdout = false
		case 'O':
			m.CaptureStdout = true
		case 'e':
			m.CaptureStderr = false
		case 'E':
			m.CaptureStderr = true
		case 'w':
			m.Wait = false
		case 'W':
			m.Wait = true
		default:
			accept, err := ParseAccept(spec[i:])
			if err != nil {
				return m, &ConfigError{Spec: spec, Err: ErrInvalidAccept}
			}
			m.Accept = accept
			return m, nil
		}
	}
	return m, nil
}

// validate enforces that captured output is only requested when the process
// is waited for.
func (m Mode) validate() error {
	if (m.CaptureStdout || m.CaptureStderr) && !m.Wait {
		return &ConfigError{Err: ErrCaptureRequiresWait}
	}
	return nil
}

// String renders m as a mode string that Apply reads back to the same Mode.
func (m Mode) String() string {
	flag := func(on bool, yes, no byte) byte {
		if on {
			return yes
		}
		return no
	}
	b := []byte{
		flag(m.UseShell, 'S', 's'),
		flag(m.CaptureStdout, 'O', 'o'),
		flag(m.CaptureStderr, 'E', 'e'),
		flag(m.Wait, 'W', 'w'),
	}
	return string(b) + m.Accept.String()
}
