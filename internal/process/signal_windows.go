//go:build windows

package process

import "os"

// signalTerm has no graceful equivalent on Windows; termination is a kill.
func signalTerm(p *os.Process) error {
	return p.Kill()
}

func signalKill(p *os.Process) error {
	return p.Kill()
}
