package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nurdletech/vdiff/internal/errors"
	"github.com/nurdletech/vdiff/internal/session"
)

func diffFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "vim",
			Aliases: []string{"v"},
			Usage:   "use the terminal editor",
		},
		&cli.BoolFlag{
			Name:    "gvim",
			Aliases: []string{"g"},
			Usage:   "use the GUI editor",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "edit the files even if they are the same",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "issue only error messages",
		},
	}
}

// editorSession is the part of session.Session the diff action drives
type editorSession interface {
	Edit() error
	Cleanup() error
}

func diffCommand(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) < session.MinFiles || len(files) > session.MaxFiles {
		return errors.WrongFileCount(len(files))
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	opts := []session.Option{
		session.WithPreferences(env.prefs),
		session.WithLogger(env.logger),
	}
	if cmd.Bool("vim") {
		opts = append(opts, session.WithGUI(false))
	}
	if cmd.Bool("gvim") {
		opts = append(opts, session.WithGUI(true))
	}

	s, err := session.New(env.config, files, opts...)
	if err != nil {
		return err
	}

	if !cmd.Bool("force") {
		differ, err := s.Differ()
		if err != nil {
			return err
		}
		if !differ {
			if !cmd.Bool("quiet") {
				fmt.Fprintf(outWriter(cmd), "%s and %s are the same.\n", files[0], files[1])
			}
			return nil
		}
	}

	return runEditor(ctx, s)
}

// runEditor edits until the editor exits or ctx is cancelled, in which case
// the session is cleaned up.
func runEditor(ctx context.Context, s editorSession) error {
	done := make(chan error, 1)
	go func() {
		done <- s.Edit()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cleanupErr := s.Cleanup()
		editErr := <-done
		if editErr == nil {
			editErr = errors.KilledByUser()
		}
		return stderrors.Join(editErr, cleanupErr)
	}
}
