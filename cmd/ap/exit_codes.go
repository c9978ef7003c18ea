package main

import (
	"errors"
	"os"

	appack "github.com/catforgor/appack"
	"github.com/catforgor/appack/internal/config"
)

// Exit codes for the ap CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // submission packed
	ExitGeneral = 1 // general/unexpected error
	ExitUsage   = 2 // invalid flags, config, or validation
	ExitIO      = 3 // file not found, permission denied, output exists
	ExitCompile = 4 // compiler missing or compile failure
)

// exitCodeFor maps an error to an exit code. It uses errors.Is to check
// wrapped errors, so callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, appack.ErrCompilerNotFound) ||
		errors.Is(err, appack.ErrCompileFailed) {
		return ExitCompile
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, appack.ErrOutputExists) {
		return ExitIO
	}

	if errors.Is(err, appack.ErrInvalidAssignment) ||
		errors.Is(err, appack.ErrInvalidName) ||
		errors.Is(err, appack.ErrEmptyTemplate) ||
		errors.Is(err, appack.ErrThemeNotFound) ||
		errors.Is(err, appack.ErrInvalidTheme) ||
		errors.Is(err, appack.ErrFontNotFound) ||
		errors.Is(err, appack.ErrWrongExtension) ||
		errors.Is(err, appack.ErrNoSourceFile) ||
		errors.Is(err, appack.ErrAmbiguousSource) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, errUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
