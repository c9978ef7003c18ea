// Package fileutil provides file and path helpers for bundle assembly.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Windows keeps freshly-closed files locked briefly (antivirus, indexing),
// so removals retry before giving up.
const (
	deleteRetries = 25
	deleteDelay   = 80 * time.Millisecond
)

// binaryExtensions are compiled artifacts that never belong in a bundle.
var binaryExtensions = map[string]bool{
	".exe": true, ".com": true, ".dll": true, ".so": true,
	".dylib": true, ".out": true, ".bin": true, ".msi": true,
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// PathsEqual reports whether both paths exist and resolve to the same
// file. Missing paths compare unequal, which is safe for pre-copy checks.
func PathsEqual(a, b string) bool {
	ca, errA := filepath.EvalSymlinks(a)
	cb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return false
	}
	ca, errA = filepath.Abs(ca)
	cb, errB = filepath.Abs(cb)
	return errA == nil && errB == nil && ca == cb
}

// ReadText reads a file as text. Invalid UTF-8 passes through unchanged;
// the escaping layers downstream handle arbitrary bytes.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// CopyFile copies src to dst, truncating dst if it exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}

// IsBinary reports whether path looks like a compiled artifact, by
// extension or (outside Windows) the executable bit.
func IsBinary(path string) bool {
	if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	if runtime.GOOS != "windows" {
		if info, err := os.Stat(path); err == nil {
			return info.Mode().Perm()&0o111 != 0
		}
	}
	return false
}

// RemoveFileRetry removes a file, retrying transient failures.
func RemoveFileRetry(path string) error {
	return retryRemove(path, os.Remove)
}

// RemoveDirRetry removes a directory tree, retrying transient failures.
func RemoveDirRetry(path string) error {
	return retryRemove(path, os.RemoveAll)
}

func retryRemove(path string, remove func(string) error) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var lastErr error
	for i := 0; i < deleteRetries; i++ {
		lastErr = remove(path)
		if lastErr == nil {
			return nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
		if i+1 < deleteRetries {
			time.Sleep(deleteDelay)
		}
	}
	return fmt.Errorf("removing %s: %w", path, lastErr)
}
