//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// SetGroup arranges for cmd to start in its own process group so that
// KillGroup can later take down the whole tree.
func SetGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
