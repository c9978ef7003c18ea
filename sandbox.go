package appack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/catforgor/appack/internal/process"
)

// runState tracks a bounded child process. The timeout race is expressed
// as "first of {process exit, timer fire, ctx cancel} wins".
type runState int

const (
	stateRunning runState = iota
	stateCompleted
	stateTimedOut
)

// Sandbox compiles and runs untrusted student code under a wall-clock bound.
// It is not an isolation layer: the only protections are the timeout and
// separate stream capture.
type Sandbox struct {
	timeout  time.Duration
	lookPath func(file string) (string, error)
}

// NewSandbox creates a Sandbox with the fixed run timeout.
func NewSandbox() *Sandbox {
	return &Sandbox{
		timeout:  RunTimeout,
		lookPath: exec.LookPath,
	}
}

// DetectCompiler locates a C compiler on the search path, preferring gcc
// over clang. Absence of both is ErrCompilerNotFound.
func (s *Sandbox) DetectCompiler() (string, error) {
	for _, name := range []string{"gcc", "clang"} {
		if path, err := s.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrCompilerNotFound
}

// Capture produces a RunResult from the student's program. With runCommand
// set, the command runs through the system shell as-is (this is how input
// is piped to interactive programs). Otherwise the .c file is compiled and
// the resulting binary runs with no arguments and no stdin.
func (s *Sandbox) Capture(ctx context.Context, cFile, runCommand string) (*RunResult, error) {
	if runCommand != "" {
		return s.runBounded(ctx, shellCommand(runCommand))
	}

	compiler, err := s.DetectCompiler()
	if err != nil {
		return nil, err
	}

	bin := tempBinaryPath()
	defer func() {
		if err := os.Remove(bin); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: couldn't clean up temp binary: %v\n", err)
		}
	}()

	if err := s.compile(ctx, compiler, cFile, bin); err != nil {
		return nil, err
	}

	return s.runBounded(ctx, exec.Command(bin))
}

// compile invokes the compiler and surfaces its stderr on failure.
// A failed compile never proceeds to execution.
func (s *Sandbox) compile(ctx context.Context, compiler, cFile, bin string) error {
	cmd := exec.CommandContext(ctx, compiler, cFile, "-o", bin)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w (%s):\n%s", ErrCompileFailed, filepath.Base(compiler), stderr.String())
		}
		return fmt.Errorf("running %s: %w", compiler, err)
	}
	return nil
}

// runBounded starts cmd in its own process group and waits for the first of
// process exit, timer fire, or context cancellation. On timeout the whole
// group is killed, TimedOut is set, and ExitCode stays nil; the run is
// never retried.
func (s *Sandbox) runBounded(ctx context.Context, cmd *exec.Cmd) (*RunResult, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	process.SetGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	state := stateRunning
	var waitErr error
	for state == stateRunning {
		select {
		case waitErr = <-done:
			state = stateCompleted
		case <-timer.C:
			process.KillGroup(cmd.Process.Pid)
			<-done // reap; the kill makes Wait return promptly
			state = stateTimedOut
		case <-ctx.Done():
			process.KillGroup(cmd.Process.Pid)
			<-done
			return nil, ctx.Err()
		}
	}

	res := &RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if state == stateTimedOut {
		res.TimedOut = true
		return res, nil
	}

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("waiting for process: %w", waitErr)
		}
		code = exitErr.ExitCode()
	}
	res.ExitCode = &code
	return res, nil
}

// shellCommand wraps a user-supplied command line in the system shell.
func shellCommand(command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("powershell", "-NoProfile", "-Command", command)
	}
	return exec.Command("sh", "-c", command)
}

// tempBinaryPath returns a unique path for the compiled artifact. The file
// lives for one run and is removed afterwards.
func tempBinaryPath() string {
	name := fmt.Sprintf("appack_run_%d_%d", time.Now().UnixMilli(), os.Getpid())
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(os.TempDir(), name)
}
