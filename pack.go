package appack

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/catforgor/appack/internal/fileutil"
)

// ResolveCFile returns the provided path, or scans the working directory
// for exactly one .c file. Zero or multiple candidates are errors.
func ResolveCFile(provided string) (string, error) {
	if provided != "" {
		return provided, nil
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		return "", fmt.Errorf("reading current directory: %w", err)
	}

	var found []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".c") {
			found = append(found, e.Name())
		}
	}
	sort.Strings(found)

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w in current directory", ErrNoSourceFile)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %s, specify --c-file", ErrAmbiguousSource, strings.Join(found, ", "))
	}
}

// CheckExtension verifies the file exists and carries one of the allowed
// extensions (without dots). label names the file kind in errors.
func CheckExtension(path string, allowed []string, label string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s not found: %s", label, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is not a file: %s", label, path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be .%s, got %s", ErrWrongExtension, label, strings.Join(allowed, "/."), path)
}

// PrepareOutput enforces the overwrite discipline: existing targets fail
// without force, and with force are removed before any write happens.
func PrepareOutput(dir, zipPath string, force bool) error {
	for _, target := range []string{dir, zipPath} {
		if _, err := os.Stat(target); err != nil {
			continue
		}
		if !force {
			return fmt.Errorf("%w: %s (use --force)", ErrOutputExists, target)
		}
	}
	if force {
		if err := fileutil.RemoveDirRetry(dir); err != nil {
			return err
		}
		if err := fileutil.RemoveFileRetry(zipPath); err != nil {
			return err
		}
	}
	return nil
}

// CopyNonBinaryFiles copies the regular, non-binary files from src into
// dst. Subdirectories are skipped; a submission is a flat folder.
func CopyNonBinaryFiles(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(src, e.Name())
		if fileutil.IsBinary(path) {
			continue
		}
		dest := filepath.Join(dst, e.Name())
		if fileutil.PathsEqual(path, dest) {
			continue
		}
		if err := fileutil.CopyFile(path, dest); err != nil {
			return err
		}
	}
	return nil
}

// CreateZip deflates sourceDir into zipPath with forward-slash entry
// names so the archive opens cleanly everywhere.
func CreateZip(sourceDir, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", zipPath, err)
	}
	defer out.Close()

	w := zip.NewWriter(out)

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			_, err := w.Create(name + "/")
			return err
		}

		entry, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(entry, f)
		return err
	})
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("zipping %s: %w", sourceDir, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", zipPath, err)
	}
	return out.Close()
}

// Manifest records what went into a bundle. It ships inside the
// submission folder so graders can see how the bundle was produced.
type Manifest struct {
	Tool       string    `yaml:"tool"`
	Version    string    `yaml:"version"`
	Assignment string    `yaml:"assignment"`
	Name       string    `yaml:"name"`
	StudentID  string    `yaml:"id"`
	CFile      string    `yaml:"c_file"`
	AutoDoc    bool      `yaml:"auto_doc"`
	Files      []string  `yaml:"files"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// WriteManifest serializes the manifest as YAML into dir.
func WriteManifest(dir string, m *Manifest) error {
	sort.Strings(m.Files)
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("serializing manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
