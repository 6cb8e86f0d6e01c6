package scriptenv

import (
	"fmt"
	"time"

	"github.com/giantswarm/scriptenv/internal/process"
	"github.com/giantswarm/scriptenv/internal/script"
)

// Sentinel errors for inspection with errors.Is. Declared as immutable
// constants so they survive wrapping unchanged.
const (
	// ErrScriptNotFound is returned when the script identifier cannot be
	// resolved to an existing executable. The wrapped message names the
	// identifier that was requested.
	ErrScriptNotFound = script.ErrNotFound

	// ErrTimeout matches the error returned when a run exceeds its
	// effective timeout. The concrete error is a *TimeoutError carrying
	// the timeout value and the partial output captured before termination.
	ErrTimeout = process.ErrTimeout

	// ErrAlreadyStarted is returned by Run and Start while a child from a
	// previous call is still active on the same runner.
	ErrAlreadyStarted = process.ErrAlreadyStarted
)

// TimeoutError reports that a run exceeded its effective timeout. By the
// time it is returned the child (and its direct children) have been
// terminated; Stdout and Stderr hold whatever output was captured before
// the termination sequence completed.
type TimeoutError struct {
	Timeout time.Duration
	Stdout  string
	Stderr  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("run timed out after %s", e.Timeout)
}

// Unwrap makes errors.Is(err, ErrTimeout) match.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}
