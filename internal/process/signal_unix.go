//go:build unix

package process

import (
	"os"
	"syscall"
)

// signalTerm asks the child's process group to exit gracefully. Falls back
// to signalling the child alone when the group signal fails (e.g. the child
// never made it into its own group).
func signalTerm(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGTERM); err == nil {
		return nil
	}
	return p.Signal(syscall.SIGTERM)
}

// signalKill forcefully kills the child's process group, falling back to
// the child alone.
func signalKill(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err == nil {
		return nil
	}
	return p.Kill()
}
