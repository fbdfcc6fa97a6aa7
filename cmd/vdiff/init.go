package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nurdletech/vdiff/internal/config"
	"github.com/nurdletech/vdiff/internal/errors"
)

// NewInitCommand creates the init command definition
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration file",
		Description: "Creates the vdiff configuration file with the default editor " +
			"and process settings.",
		Action: initCommand,
	}
}

func initCommand(_ context.Context, cmd *cli.Command) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	if err := config.WriteDefault(path); err != nil {
		if stderrors.Is(err, config.ErrConfigExists) {
			return errors.ConfigAlreadyExists(path)
		}
		return err
	}

	fmt.Fprintf(outWriter(cmd), "Created configuration file: %s\n", path)
	return nil
}
