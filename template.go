package appack

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandDisplay substitutes the known placeholders into the run display
// template. Unknown {tokens} pass through verbatim, and substituted values
// are never re-scanned, so expansion is a single pass.
//
// Known placeholders: {assignment}, {assignment_number}, {name}, {id},
// {c_file}, {c_stem}.
func ExpandDisplay(tpl string, cfg *Config) (string, error) {
	if tpl == "" {
		return DefaultDisplayCommand(cfg.Assignment), nil
	}
	if strings.TrimSpace(tpl) == "" {
		return "", ErrEmptyTemplate
	}

	cName := filepath.Base(cfg.CFile)
	cStem := strings.TrimSuffix(cName, filepath.Ext(cName))
	if cStem == "" {
		cStem = "program"
	}

	r := strings.NewReplacer(
		"{assignment}", cfg.Assignment,
		"{assignment_number}", fmt.Sprintf("%d", cfg.AssignmentNumber),
		"{name}", cfg.Name,
		"{id}", cfg.StudentID,
		"{c_file}", cName,
		"{c_stem}", cStem,
	)

	out := strings.TrimSpace(r.Replace(strings.TrimSpace(tpl)))
	if out == "" {
		return "", fmt.Errorf("%w: template produced an empty result", ErrEmptyTemplate)
	}
	return out, nil
}

// DefaultDisplayCommand is the prompt shown when no template is configured:
// the assignment label itself, with an .exe suffix on Windows.
func DefaultDisplayCommand(assignment string) string {
	if runtime.GOOS == "windows" {
		return assignment + ".exe"
	}
	return assignment
}
