package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger writes human-oriented progress to stderr; stdout stays clean for
// machine-readable output (e.g. `ap config path`).
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// setVerbose switches on debug-level progress lines.
func setVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}
