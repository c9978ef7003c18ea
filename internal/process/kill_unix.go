//go:build !windows

package process

import "syscall"

// KillGroup kills a process and all its children by sending SIGKILL to the
// process group (negative PID). The child must have been started with
// SetGroup for the group to exist.
func KillGroup(pid int) {
	// Best-effort cleanup; a vanished group is not an error
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
