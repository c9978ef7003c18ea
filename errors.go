package appack

import (
	"errors"

	"github.com/catforgor/appack/internal/themes"
)

// Sentinel errors for library operations.
var (
	// Sandbox errors.
	ErrCompilerNotFound = errors.New("no C compiler found (gcc/clang)")
	ErrCompileFailed    = errors.New("compile failed")
	ErrSpawnFailed      = errors.New("failed to start program")

	// Template errors.
	ErrEmptyTemplate = errors.New("run display template cannot be blank")

	// Theme errors, shared with internal/themes so errors.Is works
	// across layers.
	ErrThemeNotFound = themes.ErrNotFound
	ErrInvalidTheme  = themes.ErrInvalid
	ErrFontNotFound  = errors.New("font not found")

	// Renderer errors.
	ErrImageEncode = errors.New("failed to encode screenshot")

	// Composer errors.
	ErrEmptySource = errors.New("source code cannot be empty")

	// Packaging errors.
	ErrOutputExists = errors.New("output already exists")

	// Input validation errors.
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrInvalidName       = errors.New("invalid name")
	ErrWrongExtension    = errors.New("wrong file extension")
	ErrNoSourceFile      = errors.New("no .c file found")
	ErrAmbiguousSource   = errors.New("multiple .c files found")
)
