package command

import (
	"slices"
	"strings"

	"github.com/alessio/shellescape"
)

// Program is what a Command runs: either a single command line meant for an
// interpreter, or an executable followed by its arguments.
type Program struct {
	line   string
	tokens []string
	isLine bool
}

// Line returns a Program holding one command line.
func Line(line string) Program {
	return Program{line: line, isLine: true}
}

// Argv returns a Program holding an executable and its arguments.
func Argv(tokens ...string) Program {
	return Program{tokens: slices.Clone(tokens)}
}

// IsLine reports whether the program was given as a single command line.
func (p Program) IsLine() bool { return p.isLine }

// IsEmpty reports whether there is nothing to run.
func (p Program) IsEmpty() bool {
	if p.isLine {
		return strings.TrimSpace(p.line) == ""
	}
	return len(p.tokens) == 0 || p.tokens[0] == ""
}

// Tokens returns the program as a token list. A command line is split on
// whitespace, without any shell parsing.
func (p Program) Tokens() []string {
	if p.isLine {
		return strings.Fields(p.line)
	}
	return slices.Clone(p.tokens)
}

// Name returns the first token, usually the executable.
func (p Program) Name() string {
	tokens := p.Tokens()
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// String returns the program as one line, tokens joined by single spaces.
func (p Program) String() string {
	return p.join(false)
}

// join renders the program as an interpreter line. Tokens are joined with
// single spaces; with quote set, each token is shell-quoted first.
func (p Program) join(quote bool) string {
	if p.isLine {
		return p.line
	}
	if quote {
		return shellescape.QuoteCommand(p.tokens)
	}
	return strings.Join(p.tokens, " ")
}

// display renders the program for an error message.
func (p Program) display(show ShowCommand) string {
	switch show {
	case ShowCommandFull:
		return p.String()
	case ShowCommandShort:
		return p.Name()
	default:
		return ""
	}
}
