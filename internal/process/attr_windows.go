//go:build windows

package process

import "os/exec"

// configureSysProcAttr is a no-op on Windows; there are no process groups in
// the unix sense and no parent-death signal.
func configureSysProcAttr(_ *exec.Cmd) {}
