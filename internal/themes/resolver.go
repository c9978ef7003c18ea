package themes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// themeFile mirrors the TOML schema. Absent fields inherit defaults;
// present fields are validated strictly.
type themeFile struct {
	BG       *string `toml:"bg"`
	FG       *string `toml:"fg"`
	Scale    *int    `toml:"scale"`
	Padding  *int    `toml:"padding"`
	Font     *string `toml:"font"`
	FontSize *int    `toml:"font_size"`
}

// Resolve maps a theme name to a validated Theme. Builtins are searched
// first, then {userDir}/{name}.toml, where name may address nested
// subfolders ("dark/dracula"). An empty name resolves to the default.
func Resolve(name, userDir string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default(), nil
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	if t := Builtin(name); t != nil {
		return t, nil
	}

	path := filepath.Join(userDir, filepath.FromSlash(name)+".toml")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %q\n  built-in: %s\n  custom (%s): %s",
			ErrNotFound, name,
			strings.Join(BuiltinNames, ", "),
			userDir, availableList(userDir))
	}

	return LoadFile(path)
}

// LoadFile parses and validates a single theme TOML file.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme %s: %w", path, err)
	}

	var raw themeFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filepath.Base(path), err)
	}

	t := Default()
	t.BaseDir = filepath.Dir(path)

	if raw.BG != nil {
		if t.BG, err = ParseHexColor(*raw.BG); err != nil {
			return nil, fmt.Errorf("bg: %w", err)
		}
	}
	if raw.FG != nil {
		if t.FG, err = ParseHexColor(*raw.FG); err != nil {
			return nil, fmt.Errorf("fg: %w", err)
		}
	}
	if raw.Scale != nil {
		t.Scale = *raw.Scale
	}
	if raw.Padding != nil {
		t.Padding = *raw.Padding
	}
	if raw.FontSize != nil {
		t.FontSize = *raw.FontSize
	}
	if raw.Font != nil {
		t.FontPath = strings.TrimSpace(*raw.Font)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// validateName rejects traversal sequences and absolute paths while
// allowing nested names like "dark/dracula".
func validateName(name string) error {
	if strings.ContainsAny(name, "\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// availableList names the user themes under dir, nested paths included,
// for the not-found error message.
func availableList(dir string) string {
	var names []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".toml") {
			return nil // unreadable entries just don't get listed
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		rel = strings.TrimSuffix(rel, filepath.Ext(rel))
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if len(names) == 0 {
		return "(none)"
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
