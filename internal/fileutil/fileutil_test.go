package fileutil_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/catforgor/appack/internal/fileutil"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "a.txt", "x")

	if !fileutil.FileExists(path) {
		t.Error("FileExists = false for a regular file")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists = true for a directory")
	}
	if fileutil.FileExists(filepath.Join(dir, "ghost")) {
		t.Error("FileExists = true for a missing path")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "a.txt", "x")

	if !fileutil.DirExists(dir) {
		t.Error("DirExists = false for a directory")
	}
	if fileutil.DirExists(path) {
		t.Error("DirExists = true for a regular file")
	}
}

func TestPathsEqual(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "a.txt", "x")
	other := write(t, dir, "b.txt", "x")

	if !fileutil.PathsEqual(path, path) {
		t.Error("a path does not equal itself")
	}
	if !fileutil.PathsEqual(path, filepath.Join(dir, ".", "a.txt")) {
		t.Error("equivalent spellings compare unequal")
	}
	if fileutil.PathsEqual(path, other) {
		t.Error("distinct files compare equal")
	}
	if fileutil.PathsEqual(path, filepath.Join(dir, "ghost")) {
		t.Error("missing path compares equal")
	}
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := write(t, dir, "src.txt", "payload")
	dst := filepath.Join(dir, "dst.txt")

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("copied content = %q", data)
	}

	// Copying again truncates rather than appending.
	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	data, _ = os.ReadFile(dst)
	if string(data) != "payload" {
		t.Errorf("recopied content = %q", data)
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		want bool
	}{
		{name: "prog.exe", want: true},
		{name: "lib.so", want: true},
		{name: "a.out", want: true},
		{name: "UPPER.EXE", want: true},
		{name: "main.c", want: false},
		{name: "notes.md", want: false},
	}

	for _, tt := range tests {
		path := write(t, dir, tt.name, "x")
		if got := fileutil.IsBinary(path); got != tt.want {
			t.Errorf("IsBinary(%q) = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestIsBinaryExecutableBit(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("no executable bit on Windows")
	}

	dir := t.TempDir()
	path := write(t, dir, "script", "#!/bin/sh\n")
	if fileutil.IsBinary(path) {
		t.Error("non-executable file flagged as binary")
	}

	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if !fileutil.IsBinary(path) {
		t.Error("executable file not flagged as binary")
	}
}

func TestRemoveRetry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "a.txt", "x")

	if err := fileutil.RemoveFileRetry(path); err != nil {
		t.Fatalf("RemoveFileRetry error: %v", err)
	}
	if fileutil.FileExists(path) {
		t.Error("file survived removal")
	}

	// Removing an absent path succeeds.
	if err := fileutil.RemoveFileRetry(path); err != nil {
		t.Errorf("RemoveFileRetry on missing path: %v", err)
	}

	sub := filepath.Join(dir, "tree")
	if err := os.MkdirAll(filepath.Join(sub, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(sub, "nested"), "deep.txt", "x")

	if err := fileutil.RemoveDirRetry(sub); err != nil {
		t.Fatalf("RemoveDirRetry error: %v", err)
	}
	if fileutil.DirExists(sub) {
		t.Error("directory survived removal")
	}
}

func TestReadText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "src.c", "int main(void){return 0;}\n")

	got, err := fileutil.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText error: %v", err)
	}
	if got != "int main(void){return 0;}\n" {
		t.Errorf("ReadText = %q", got)
	}

	if _, err := fileutil.ReadText(filepath.Join(dir, "ghost.c")); err == nil {
		t.Error("ReadText on a missing file did not error")
	}
}
