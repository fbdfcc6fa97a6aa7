package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nurdletech/vdiff/internal/command"
	"github.com/nurdletech/vdiff/internal/errors"
)

// NewRunCommand creates the run command definition
func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a command and report its outcome",
		UsageText: "vdiff run [options] -- <command> [args...]",
		Description: "Runs a command the way vdiff runs editors. The mode string toggles " +
			"shell use (s/S), stdout and stderr capture (o/O, e/E) and waiting (w/W), " +
			"optionally followed by the accepted exit statuses ('*', 'N', '<=N', '=N', 'N,' or 'M,N,...').",
		ArgsUsage: "-- <command> [args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "mode string, for example OEW or S*",
			},
			&cli.BoolFlag{
				Name:    "shell",
				Aliases: []string{"s"},
				Usage:   "run through the shell",
			},
			&cli.StringFlag{
				Name:    "accept",
				Aliases: []string{"a"},
				Usage:   "accepted exit statuses: '*', 'N', '<=N', '=N', 'N,' or 'M,N,...'",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "text written to the command's stdin",
			},
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "text encoding of input and captured output",
			},
			&cli.BoolFlag{
				Name:  "quote",
				Usage: "shell-quote arguments when joining them for the shell",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "working directory",
			},
			&cli.StringSliceFlag{
				Name:  "env",
				Usage: "extra KEY=value environment entries",
			},
		},
		Action: runCommand,
	}
}

func runCommand(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		return errors.CommandRequired()
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	mode := cmd.String("mode")
	program := command.Argv(args...)
	if cmd.Bool("shell") {
		mode = "S" + mode
		if len(args) == 1 {
			program = command.Line(args[0])
		}
	}

	opts := []command.Option{command.WithPreferences(env.prefs)}
	if cmd.IsSet("accept") {
		policy, err := command.ParseAccept(cmd.String("accept"))
		if err != nil {
			return errors.InvalidMode(cmd.String("accept"), err)
		}
		opts = append(opts, command.WithAccept(policy))
	}
	if enc := cmd.String("encoding"); enc != "" {
		opts = append(opts, command.WithEncoding(enc))
	}
	if cmd.Bool("quote") {
		opts = append(opts, command.WithQuotedTokens())
	}
	if dir := cmd.String("dir"); dir != "" {
		opts = append(opts, command.WithDir(dir))
	}
	if extra := cmd.StringSlice("env"); len(extra) > 0 {
		opts = append(opts, command.WithEnv(extra...))
	}

	c, err := command.New(program, mode, opts...)
	if err != nil {
		if stderrors.Is(err, command.ErrInvalidAccept) || stderrors.Is(err, command.ErrCaptureRequiresWait) {
			return errors.InvalidMode(mode, err)
		}
		return err
	}

	var stdin io.Reader
	if cmd.IsSet("input") {
		stdin = strings.NewReader(cmd.String("input"))
	}

	w := outWriter(cmd)
	proc, err := c.Start(stdin)
	if proc == nil {
		return err
	}
	if !c.Waits() {
		fmt.Fprintf(w, "started process %d\n", proc.Pid())
		return err
	}

	result, err := proc.Wait()
	if result != nil {
		if _, writeErr := io.WriteString(w, result.Stdout); writeErr != nil {
			return writeErr
		}
		if _, writeErr := io.WriteString(errWriter(cmd), result.Stderr); writeErr != nil {
			return writeErr
		}
		env.logger.Debug().Dur("duration", result.Duration).Msg("command finished")
		fmt.Fprintf(errWriter(cmd), "exit status %d\n", result.Status)
	}
	return err
}
