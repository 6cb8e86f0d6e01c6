package process

import (
	"fmt"
	"os/exec"
	"time"
)

// DefaultStopTimeout bounds the shutdown sequence run by WaitExit after the
// watchdog fires, and is the fallback for Terminate-style stops.
const DefaultStopTimeout = 10 * time.Second

// termGracePeriod is how long a child gets to exit after the graceful
// termination signal before the forceful kill is sent. Clamped to the stop
// timeout so the kill always lands while the stop budget is still running.
const termGracePeriod = 2 * time.Second

// killDrainTimeout is the hard upper bound on waiting for the done channel
// once the kill signal has been sent (or the child was already gone). A kill
// cannot be caught, so this should never fire; it exists so no code path can
// block forever on a cmd.Wait stuck in kernel I/O.
const killDrainTimeout = 10 * time.Second

// terminate runs the graceful-then-forceful shutdown sequence against an
// already-started child, using the done channel fed by the single cmd.Wait
// goroutine started at spawn (a second Wait call would be undefined).
//
//  1. Send the termination signal (to the whole process group where the
//     platform supports it, so direct children are reaped too).
//  2. Schedule the kill signal after termGracePeriod, canceled if the child
//     exits first.
//  3. Wait for exit, bounded by timeout plus a final drain window.
//
// waitErr is the raw cmd.Wait result (callers derive the exit code from it);
// err is non-nil only when the sequence itself failed, meaning the child may
// still be alive. terminate does not clear the caller's handle fields.
func terminate(cmd *exec.Cmd, done <-chan error, timeout time.Duration, name string) (waitErr, err error) {
	if cmd == nil || cmd.Process == nil {
		return nil, nil
	}
	if done == nil {
		return nil, fmt.Errorf("%s: missing wait channel", name)
	}

	if sigErr := signalTerm(cmd.Process); sigErr != nil {
		// The child already exited; collect the pending wait result with a
		// hard bound rather than blocking indefinitely.
		waitErr, ok := recvWait(done, killDrainTimeout)
		if !ok {
			return nil, fmt.Errorf("%s: timed out collecting exit status", name)
		}
		return waitErr, nil
	}

	grace := min(termGracePeriod, timeout)
	killTimer := time.AfterFunc(grace, func() {
		// Killing an already-exited process is harmless; the error from a
		// late kill is deliberately dropped.
		_ = signalKill(cmd.Process)
	})
	defer killTimer.Stop()

	total := time.NewTimer(timeout)
	defer total.Stop()

	select {
	case waitErr := <-done:
		return waitErr, nil
	case <-total.C:
		waitErr, ok := recvWait(done, killDrainTimeout)
		if !ok {
			return nil, fmt.Errorf("%s: process did not exit after kill", name)
		}
		return waitErr, nil
	}
}

// recvWait reads from done with an upper bound. Returns the received value
// and true, or a nil error and false when the bound elapsed.
func recvWait(done <-chan error, bound time.Duration) (error, bool) {
	t := time.NewTimer(bound)
	defer t.Stop()

	select {
	case err := <-done:
		return err, true
	case <-t.C:
		return nil, false
	}
}
