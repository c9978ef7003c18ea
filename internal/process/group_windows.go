//go:build windows

package process

import "os/exec"

// SetGroup is a no-op on Windows; KillGroup uses taskkill /T which walks
// the child tree by parent PID instead of process groups.
func SetGroup(cmd *exec.Cmd) {}
