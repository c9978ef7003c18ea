package appack

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", fmt.Errorf("%s: executable file not found", file)
	}
}

func TestDetectCompiler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		available []string
		want      string
		wantErr   error
	}{
		{name: "gcc preferred", available: []string{"clang", "gcc"}, want: "/usr/bin/gcc"},
		{name: "clang fallback", available: []string{"clang"}, want: "/usr/bin/clang"},
		{name: "neither found", available: nil, wantErr: ErrCompilerNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSandbox()
			s.lookPath = fakeLookPath(tt.available...)

			got, err := s.DetectCompiler()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DetectCompiler() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("DetectCompiler() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaptureNoCompiler(t *testing.T) {
	t.Parallel()

	s := NewSandbox()
	s.lookPath = fakeLookPath()

	if _, err := s.Capture(context.Background(), "main.c", ""); !errors.Is(err, ErrCompilerNotFound) {
		t.Errorf("Capture() error = %v, want ErrCompilerNotFound", err)
	}
}

func TestCaptureCompileFailure(t *testing.T) {
	t.Parallel()

	s := NewSandbox()
	if _, err := s.DetectCompiler(); err != nil {
		t.Skip("no C compiler installed")
	}

	dir := t.TempDir()
	if err := writeFile(dir, "broken.c", "int main(void) { return }\n"); err != nil {
		t.Fatal(err)
	}

	_, err := s.Capture(context.Background(), filepath.Join(dir, "broken.c"), "")
	if !errors.Is(err, ErrCompileFailed) {
		t.Fatalf("Capture error = %v, want ErrCompileFailed", err)
	}
	// The compiler's diagnostics ride along in the error message.
	if !strings.Contains(err.Error(), "broken.c") {
		t.Errorf("error %q does not carry compiler output", err)
	}
}

func TestCaptureCompileAndRun(t *testing.T) {
	t.Parallel()

	s := NewSandbox()
	if _, err := s.DetectCompiler(); err != nil {
		t.Skip("no C compiler installed")
	}

	dir := t.TempDir()
	src := "#include <stdio.h>\nint main(void) { printf(\"hi\\n\"); return 0; }\n"
	if err := writeFile(dir, "main.c", src); err != nil {
		t.Fatal(err)
	}

	res, err := s.Capture(context.Background(), filepath.Join(dir, "main.c"), "")
	if err != nil {
		t.Fatalf("Capture error: %v", err)
	}
	if res.Stdout != "hi\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hi\n")
	}
	if res.ExitCode == nil || *res.ExitCode != 0 {
		t.Errorf("ExitCode = %v, want 0", res.ExitCode)
	}
}

func TestRunBoundedCapturesStreams(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	s := NewSandbox()
	res, err := s.runBounded(context.Background(), shellCommand("echo out; echo err 1>&2; exit 3"))
	if err != nil {
		t.Fatalf("runBounded error: %v", err)
	}

	if res.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "out\n")
	}
	if res.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "err\n")
	}
	if res.TimedOut {
		t.Error("TimedOut = true, want false")
	}
	if res.ExitCode == nil || *res.ExitCode != 3 {
		t.Errorf("ExitCode = %v, want 3", res.ExitCode)
	}
}

func TestRunBoundedTimeout(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	s := NewSandbox()
	s.timeout = 200 * time.Millisecond

	start := time.Now()
	res, err := s.runBounded(context.Background(), shellCommand("sleep 30"))
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("runBounded error: %v", err)
	}
	if !res.TimedOut {
		t.Error("TimedOut = false, want true")
	}
	if res.ExitCode != nil {
		t.Errorf("ExitCode = %d, want nil", *res.ExitCode)
	}
	if elapsed < s.timeout {
		t.Errorf("returned after %v, sooner than the %v bound", elapsed, s.timeout)
	}
	if elapsed > 5*time.Second {
		t.Errorf("returned after %v, the kill did not take effect", elapsed)
	}
}

// A shell that spawns a child must have the whole group killed, not just
// the shell, or the test binary would wait on the inherited pipes.
func TestRunBoundedKillsDescendants(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	s := NewSandbox()
	s.timeout = 200 * time.Millisecond

	start := time.Now()
	res, err := s.runBounded(context.Background(), shellCommand("sh -c 'sleep 30' & wait"))
	if err != nil {
		t.Fatalf("runBounded error: %v", err)
	}
	if !res.TimedOut {
		t.Error("TimedOut = false, want true")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("returned after %v; descendants survived the kill", elapsed)
	}
}

func TestRunBoundedContextCancel(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	s := NewSandbox()
	if _, err := s.runBounded(ctx, shellCommand("sleep 30")); !errors.Is(err, context.Canceled) {
		t.Errorf("runBounded error = %v, want context.Canceled", err)
	}
}

func TestRunBoundedSpawnFailure(t *testing.T) {
	t.Parallel()

	s := NewSandbox()
	cmd := shellCommand("true")
	cmd.Path = "/nonexistent/binary"
	cmd.Args = []string{"/nonexistent/binary"}

	if _, err := s.runBounded(context.Background(), cmd); !errors.Is(err, ErrSpawnFailed) {
		t.Errorf("runBounded error = %v, want ErrSpawnFailed", err)
	}
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh semantics")
	}
}
