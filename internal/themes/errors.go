package themes

import "errors"

// Sentinel errors for theme resolution.
var (
	// ErrNotFound indicates no builtin or user theme matches the name.
	ErrNotFound = errors.New("theme not found")

	// ErrInvalid indicates a theme file with an out-of-range or
	// unparseable field. The wrapped message names the field.
	ErrInvalid = errors.New("invalid theme")

	// ErrInvalidName indicates a theme name with traversal sequences or
	// characters unsafe for filesystem lookup.
	ErrInvalidName = errors.New("invalid theme name")
)
