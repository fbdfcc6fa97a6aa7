package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nurdletech/vdiff/internal/command"
)

const defaultVersion = "dev"

// Version information (set by GoReleaser)
var (
	version = defaultVersion
	_       = "none"    // commit - set by GoReleaser but not used
	_       = "unknown" // date - set by GoReleaser but not used
)

func main() {
	initVersion()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode passes through the status of a command run by `vdiff run`.
func exitCode(err error) int {
	var cmdErr *command.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Status > 0 && cmdErr.Status < 256 {
		return cmdErr.Status
	}
	return 1
}
