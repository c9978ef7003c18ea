package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// errUsage marks command-line usage mistakes for exit-code mapping.
var errUsage = errors.New("usage error")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := run(os.Args[1:]); err != nil {
		logger.Error(err.Error())
		os.Exit(exitCodeFor(err))
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "init":
			return runInit()
		case "config":
			return runConfigCommand(args[1:])
		case "version":
			fmt.Println(Version)
			return nil
		}
	}
	return runPack(args)
}
