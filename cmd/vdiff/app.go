package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/nurdletech/vdiff/internal/command"
	"github.com/nurdletech/vdiff/internal/config"
	"github.com/nurdletech/vdiff/internal/errors"
	"github.com/nurdletech/vdiff/internal/logging"
)

func init() {
	// -v selects the terminal editor
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "vdiff",
		Usage:     "Compare files side by side in vimdiff",
		UsageText: "vdiff [options] <file1> <file2> [<file3> [<file4>]]",
		Description: "vdiff opens two to four files in (g)vimdiff. Identical pairs are reported " +
			"instead of opened unless --force is given.",
		Version: version,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "configuration file",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log process activity",
			},
		}, diffFlags()...),
		Action: diffCommand,
		Commands: []*cli.Command{
			NewRunCommand(),
			NewWhichCommand(),
			NewInitCommand(),
		},
	}
}

// environment is what every action needs from configuration
type environment struct {
	config     *config.Config
	configPath string
	logger     zerolog.Logger
	prefs      command.Preferences
}

func loadEnvironment(cmd *cli.Command) (*environment, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	logCfg := cfg.Log
	switch {
	case cmd.Bool("debug"):
		logCfg.Level = "debug"
	case cmd.Bool("quiet"):
		logCfg.Level = "error"
	}
	logger := logging.New(logCfg, errWriter(cmd))

	prefs, err := cfg.Preferences()
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	prefs.Logger = &logger

	return &environment{
		config:     cfg,
		configPath: path,
		logger:     logger,
		prefs:      prefs,
	}, nil
}

func configPath(cmd *cli.Command) (string, error) {
	if path := cmd.String("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
