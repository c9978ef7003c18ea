// Package config stores saved defaults under the user config directory.
// Precedence (flags > saved config > built-in defaults) is applied by the
// CLI; the library only ever sees a fully resolved Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for config operations.
var (
	ErrConfigParse = errors.New("failed to parse config")
	ErrNoConfigDir = errors.New("can't determine user config directory")
)

const (
	dirName  = "appack"
	fileName = "config.toml"
)

// File mirrors config.toml. Pointer fields distinguish "unset" from a
// false/empty value so flags can override saved values cleanly.
type File struct {
	Name               string `toml:"name,omitempty"`
	StudentID          string `toml:"id,omitempty"`
	OutputDir          string `toml:"output_dir,omitempty"`
	AutoDoc            *bool  `toml:"auto_doc,omitempty"`
	RunCommand         string `toml:"run_command,omitempty"`
	RunDisplayTemplate string `toml:"run_display_template,omitempty"`
	Theme              string `toml:"theme,omitempty"`
	Editor             string `toml:"editor,omitempty"`
	Watermark          *bool  `toml:"watermark,omitempty"`
}

// Path returns the config file location, e.g.
// ~/.config/appack/config.toml on Linux.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	return filepath.Join(base, dirName, fileName), nil
}

// ThemesDir returns the user themes directory next to the config file.
func ThemesDir() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "themes"), nil
}

// Load reads the config file. A missing file is an empty config.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &f, nil
}

// Save writes the config file, creating parent directories as needed.
func Save(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
