package process

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/scriptenv/internal/core"
	"github.com/giantswarm/scriptenv/internal/sentinel"
)

// ErrAlreadyStarted is returned when Start is called while a child is active.
// The child must exit or be stopped before the Proc can be reused.
const ErrAlreadyStarted = sentinel.Error("process already started")

// ErrNotStarted is returned by WaitExit when no child has been started.
const ErrNotStarted = sentinel.Error("process not started")

// ErrTimeout is returned by WaitExit when the watchdog fires before the
// child exits. By the time it is returned the child has been terminated.
const ErrTimeout = sentinel.Error("run timed out")

// ErrEmptyPath is returned when Start is given a spec without an executable path.
const ErrEmptyPath = sentinel.Error("spec path must not be empty")

// Spec describes one child process to spawn. Path must be the resolved
// executable path; Args are the arguments after argv[0]; Env is the complete
// environment in KEY=VALUE form (never inherited implicitly).
type Spec struct {
	Path string
	Args []string
	Dir  string
	Env  []string
}

// Proc supervises at most one child process at a time. It is not safe for
// concurrent use; callers serialize access, one Proc per runner.
//
// A single goroutine calls cmd.Wait per started child, after both stream
// drains finish. Its result is delivered on a buffered done channel consumed
// by exactly one of WaitExit or Stop; exited is closed alongside so that
// IsRunning can observe exit without consuming the wait result.
type Proc struct {
	name string
	log  *slog.Logger

	cmd    *exec.Cmd
	done   <-chan error
	exited <-chan struct{}
	out    *Buffers
}

// New creates a Proc with the given display name for logs and errors.
// A nil logger falls back to the library logger. Panics on an empty name,
// which would make every later error message useless.
func New(name string, logger *slog.Logger) *Proc {
	if name == "" {
		panic("scriptenv: process name must not be empty")
	}
	if logger == nil {
		logger = core.Logger()
	}
	return &Proc{name: name, log: logger}
}

// IsRunning reports whether a child is active: started and not yet exited.
func (p *Proc) IsRunning() bool {
	if p.cmd == nil {
		return false
	}
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

// Pid returns the child's process ID, or 0 when no child is active.
func (p *Proc) Pid() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Output returns the captured stdout and stderr so far.
func (p *Proc) Output() (stdout, stderr string) {
	if p.out == nil {
		return "", ""
	}
	return p.out.Snapshot()
}

// Start spawns the child described by spec. Both standard streams are piped
// and drained continuously into in-memory buffers so the child can never
// stall on a full pipe. Spawn failures (e.g. permission denied) are returned
// wrapped and leave the Proc unstarted.
func (p *Proc) Start(spec Spec) error {
	if spec.Path == "" {
		return ErrEmptyPath
	}
	if p.cmd != nil {
		return ErrAlreadyStarted
	}

	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	configureSysProcAttr(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: stdout pipe: %w", p.name, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%s: stderr pipe: %w", p.name, err)
	}

	out := NewBuffers()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", p.name, err)
	}

	// Drain both pipes until EOF. Copy errors are discarded below: when the
	// child is killed mid-write the pipes break, and the wait status is the
	// authoritative outcome.
	var g errgroup.Group
	g.Go(func() error {
		_, copyErr := io.Copy(out.Stdout(), stdoutPipe)
		return copyErr
	})
	g.Go(func() error {
		_, copyErr := io.Copy(out.Stderr(), stderrPipe)
		return copyErr
	})

	// Exactly one cmd.Wait call per child, made only after both drains are
	// done (Wait closes the pipes once the child exits). done is buffered so
	// this goroutine never blocks; exited broadcasts exit to IsRunning.
	done := make(chan error, 1)
	exited := make(chan struct{})
	go func() {
		_ = g.Wait()
		done <- cmd.Wait()
		close(exited)
	}()

	p.cmd = cmd
	p.done = done
	p.exited = exited
	p.out = out

	p.log.Debug("process started", "process", p.name, "pid", cmd.Process.Pid)
	return nil
}

// WaitExit blocks until the child exits or timeout elapses.
//
// On natural exit it returns the exit code (from the wait status; -1 when
// the child died to a signal) and a nil error. On timeout it runs the full
// termination sequence before returning ErrTimeout, so no child is ever left
// running past the caller's bound. Either way the child handle is cleared;
// captured output remains readable through Output.
func (p *Proc) WaitExit(timeout time.Duration) (int, error) {
	if p.cmd == nil {
		return 0, ErrNotStarted
	}

	watchdog := time.NewTimer(timeout)
	defer watchdog.Stop()

	select {
	case waitErr := <-p.done:
		p.clear()
		return exitStatus(p.name, waitErr)
	case <-watchdog.C:
		p.log.Debug("watchdog fired; terminating child",
			"process", p.name, "pid", p.Pid(), "timeout", timeout)
		_, stopErr := terminate(p.cmd, p.done, DefaultStopTimeout, p.name)
		if stopErr != nil {
			p.log.Warn("termination after timeout failed; child may be orphaned",
				"process", p.name, "error", stopErr)
		}
		p.clear()
		return 0, fmt.Errorf("%s: %w", p.name, ErrTimeout)
	}
}

// Stop force-terminates an active child and collects its exit status.
// Calling Stop when nothing was started is a no-op returning (0, nil).
// The exit code is -1 when the child died to the termination signal.
func (p *Proc) Stop(timeout time.Duration) (int, error) {
	if p.cmd == nil {
		return 0, nil
	}

	waitErr, stopErr := terminate(p.cmd, p.done, timeout, p.name)
	p.clear()
	if stopErr != nil {
		p.log.Warn("process stop failed; child may be orphaned",
			"process", p.name, "error", stopErr)
		return 0, stopErr
	}
	return exitStatus(p.name, waitErr)
}

// clear drops the child handle so the Proc can be started again. The output
// buffers are kept; timed-out and terminated runs report partial output.
func (p *Proc) clear() {
	p.cmd = nil
	p.done = nil
	p.exited = nil
}

// exitStatus maps a cmd.Wait error to an exit code. A non-zero exit is a
// normal outcome at this layer, not an error; only wait-level failures
// (no exit status at all) are propagated.
func exitStatus(name string, waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("%s: wait: %w", name, waitErr)
}
