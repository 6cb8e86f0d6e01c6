//go:build linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr places the child in its own process group so the
// termination sequence can signal the child and its direct children
// together, and sets Pdeathsig so the child is reaped if the test binary
// itself dies abruptly.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
