package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nurdletech/vdiff/internal/command"
	"github.com/nurdletech/vdiff/internal/errors"
)

// NewWhichCommand creates the which command definition
func NewWhichCommand() *cli.Command {
	return &cli.Command{
		Name:      "which",
		Usage:     "List every match for an executable on the search path",
		UsageText: "vdiff which [--path <dirs>] [--access x|r|w|e] <name>",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "search path to use instead of $PATH",
			},
			&cli.StringFlag{
				Name:    "access",
				Aliases: []string{"a"},
				Value:   "x",
				Usage:   "required access: x (execute), r (read), w (write) or e (exists)",
			},
		},
		Action: whichCommand,
	}
}

func whichCommand(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.NameRequired()
	}

	access, err := command.ParseAccess(cmd.String("access"))
	if err != nil {
		return err
	}

	opts := []command.WhichOption{command.WithAccess(access)}
	if cmd.IsSet("path") {
		opts = append(opts, command.WithSearchPath(cmd.String("path")))
	}

	found := command.Which(name, opts...)
	if len(found) == 0 {
		return fmt.Errorf("%s: not found", name)
	}

	w := outWriter(cmd)
	for _, path := range found {
		fmt.Fprintln(w, path)
	}
	return nil
}
