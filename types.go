package appack

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// RunTimeout bounds the wall-clock time of a student program run.
// Not exposed as a flag; a hung program is killed at this mark.
const RunTimeout = 30 * time.Second

// Config holds resolved settings for one packing run.
// Precedence (flags > saved config > defaults) is applied by the caller;
// the pipeline treats Config as immutable.
type Config struct {
	Assignment         string // normalized label, e.g. "Assignment7"
	AssignmentNumber   int
	Name               string
	StudentID          string
	CFile              string // path to the .c source
	DocFile            string // manual .doc path (empty when auto-doc)
	AutoDoc            bool
	RunCommand         string // shell command overriding compile-and-run
	RunDisplayTemplate string // display template for the prompt line
	Theme              string
	OutputDir          string
	Watermark          bool
	Force              bool
}

// RunResult captures one execution of the student program.
// ExitCode is nil when the process was killed (timeout).
type RunResult struct {
	ExitCode *int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}

// Transcript renders the captured streams as labeled sections followed by
// the exit line, the format shown in the screenshot and the document.
func (r *RunResult) Transcript() string {
	var parts []string
	if out := strings.TrimRight(r.Stdout, "\r\n"); out != "" {
		parts = append(parts, "STDOUT\n"+out)
	}
	if errOut := strings.TrimRight(r.Stderr, "\r\n"); errOut != "" {
		parts = append(parts, "STDERR\n"+errOut)
	}
	if len(parts) == 0 {
		parts = append(parts, "(no output)")
	}
	switch {
	case r.TimedOut:
		parts = append(parts, fmt.Sprintf("(timed out after %ds)", int(RunTimeout.Seconds())))
	case r.ExitCode != nil:
		parts = append(parts, fmt.Sprintf("Exit code: %d", *r.ExitCode))
	default:
		parts = append(parts, "Exit code: killed")
	}
	return strings.Join(parts, "\n\n")
}

// RenderedImage is an encoded screenshot with its pixel dimensions.
type RenderedImage struct {
	PNG    []byte
	Width  int
	Height int
}

// ParseAssignment normalizes an assignment argument into its canonical
// label and number. Accepts "7" or "Assignment7" (case-insensitive).
func ParseAssignment(input string) (label string, num int, err error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", 0, fmt.Errorf("%w: assignment cannot be empty", ErrInvalidAssignment)
	}

	digits := s
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "assignment"); ok {
		digits = strings.TrimSpace(rest)
		if digits == "" {
			return "", 0, fmt.Errorf("%w: incomplete label, use '7' or 'Assignment7'", ErrInvalidAssignment)
		}
	}

	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return "", 0, fmt.Errorf("%w: must be a number (e.g. 7) or label (e.g. Assignment7)", ErrInvalidAssignment)
		}
	}

	n := 0
	for _, ch := range digits {
		n = n*10 + int(ch-'0')
		if n > 1_000_000 {
			return "", 0, fmt.Errorf("%w: assignment number too large", ErrInvalidAssignment)
		}
	}
	if n == 0 {
		return "", 0, fmt.Errorf("%w: assignment number must be greater than 0", ErrInvalidAssignment)
	}

	return fmt.Sprintf("Assignment%d", n), n, nil
}

// CleanName collapses whitespace out of a name-like field and rejects
// characters that are unsafe in filenames. label names the field in errors.
func CleanName(input, label string) (string, error) {
	var b strings.Builder
	for _, ch := range input {
		if unicode.IsSpace(ch) {
			continue
		}
		if strings.ContainsRune(`<>:"/\|?*`, ch) || unicode.IsControl(ch) {
			return "", fmt.Errorf("%w: invalid character in %s: %q", ErrInvalidName, label, ch)
		}
		b.WriteRune(ch)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrInvalidName, label)
	}
	return b.String(), nil
}
