package scriptenv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/giantswarm/scriptenv/internal/core"
	"github.com/giantswarm/scriptenv/internal/history"
	"github.com/giantswarm/scriptenv/internal/jsonutil"
	"github.com/giantswarm/scriptenv/internal/process"
	"github.com/giantswarm/scriptenv/internal/script"
)

// recordTimeout bounds the best-effort history write after each run.
const recordTimeout = 5 * time.Second

// ScriptRunner spawns and supervises one external program per call.
//
// A runner is constructed once and reused across sequential runs; it owns at
// most one child process at a time. It is not safe for concurrent use.
// Tests needing parallel children use separate runners, which share no
// mutable state.
type ScriptRunner struct {
	scriptName string
	cfg        config
	log        *slog.Logger
	recorder   *history.Recorder

	beforeStart    []Hook
	afterTerminate []Hook

	// Active-child bookkeeping, owned exclusively while a run is live and
	// cleared when it finishes or is terminated.
	proc    *process.Proc
	runID   string
	cmdline []string
	started time.Time
}

// New creates a runner for the given script identifier (a bare executable
// name or a path). Resolution happens lazily at each call, never here, so a
// script installed after construction still resolves. Panics on an empty
// script name. A history database that cannot be opened disables recording
// with a warning rather than failing construction.
func New(scriptName string, opts ...Option) *ScriptRunner {
	if scriptName == "" {
		panic("scriptenv: script name must not be empty")
	}

	cfg := config{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &ScriptRunner{
		scriptName: scriptName,
		cfg:        cfg,
		log:        core.Logger().With("script", script.Base(scriptName)),
	}

	if cfg.historyDB != "" {
		rec, err := history.Open(cfg.historyDB, r.log)
		if err != nil {
			r.log.Warn("history recording disabled", "error", err)
		} else {
			r.recorder = rec
		}
	}

	return r
}

// BeforeStart registers a hook invoked immediately before each spawn. A
// failing before-start hook aborts the call; the child is not spawned.
func (r *ScriptRunner) BeforeStart(h Hook) {
	r.beforeStart = append(r.beforeStart, h)
}

// AfterTerminate registers a hook invoked after a child has fully stopped,
// whether it exited naturally, timed out, or was terminated. Hook errors
// are logged and never mask the run outcome.
func (r *ScriptRunner) AfterTerminate(h Hook) {
	r.afterTerminate = append(r.afterTerminate, h)
}

// DisplayName returns a short stable label of the form
// "ScriptRunner(<base-name>)" for diagnostics. The base name is recomputed
// from the script identifier, so it is identical before and after a run.
func (r *ScriptRunner) DisplayName() string {
	return fmt.Sprintf("ScriptRunner(%s)", script.Base(r.scriptName))
}

// ScriptPath resolves the script identifier to an absolute executable path,
// independent of whether a run has occurred. Returns an error wrapping
// ErrScriptNotFound when resolution fails.
func (r *ScriptRunner) ScriptPath() (string, error) {
	return script.Resolve(r.scriptName, r.searchPath())
}

// IsRunning reports whether a child is currently active: false before any
// start and after natural exit or termination.
func (r *ScriptRunner) IsRunning() bool {
	return r.proc != nil && r.proc.IsRunning()
}

// Pid returns the active child's process ID, or 0 when none is active.
func (r *ScriptRunner) Pid() int {
	if r.proc == nil {
		return 0
	}
	return r.proc.Pid()
}

// Run executes the script to completion with the given arguments and
// returns its Result. The effective timeout is the per-call override if
// given, else the runner's default, else DefaultTimeout.
//
// A child that exits non-zero or prints a traceback is a normal Result.
// Errors are reserved for resolution failures (ErrScriptNotFound), spawn
// failures, an already-active child (ErrAlreadyStarted), and timeouts: when
// the effective timeout elapses the child and its direct children are
// terminated and a *TimeoutError carrying the partial output is returned.
func (r *ScriptRunner) Run(args []string, opts ...RunOption) (*Result, error) {
	var rc runConfig
	for _, opt := range opts {
		opt(&rc)
	}

	if err := r.launch(args, rc); err != nil {
		return nil, err
	}

	timeout := r.effectiveTimeout(rc)
	code, err := r.proc.WaitExit(timeout)
	stdout, stderr := r.proc.Output()

	if err != nil {
		if errors.Is(err, process.ErrTimeout) {
			r.record(code, stdout, stderr, true)
			r.finish()
			return nil, &TimeoutError{Timeout: timeout, Stdout: stdout, Stderr: stderr}
		}
		r.finish()
		return nil, err
	}

	res := r.buildResult(code, stdout, stderr)
	r.record(code, stdout, stderr, false)
	r.finish()
	return res, nil
}

// Start spawns the script without blocking until completion, for long-lived
// children a test wants to poll or terminate explicitly. The per-call
// timeout option has no effect here; supervision is up to the caller via
// IsRunning and Terminate.
func (r *ScriptRunner) Start(args []string, opts ...RunOption) error {
	var rc runConfig
	for _, opt := range opts {
		opt(&rc)
	}
	return r.launch(args, rc)
}

// Terminate force-stops the active child using the graceful-then-forceful
// sequence and returns a Result built from the captured output. Calling
// Terminate on a runner that never started anything is a no-op returning
// (nil, nil).
func (r *ScriptRunner) Terminate() (*Result, error) {
	if r.proc == nil {
		return nil, nil
	}

	code, err := r.proc.Stop(process.DefaultStopTimeout)
	stdout, stderr := r.proc.Output()
	if err != nil {
		r.finish()
		return nil, err
	}

	res := r.buildResult(code, stdout, stderr)
	r.record(code, stdout, stderr, false)
	r.finish()
	return res, nil
}

// Close releases the runner's resources. An active child is terminated
// first with a warning; callers should normally Terminate (or let Run
// finish) themselves. Safe to call on a runner without a history database.
func (r *ScriptRunner) Close() error {
	if r.IsRunning() {
		r.log.Warn("Close called with an active child; terminating")
		if _, err := r.Terminate(); err != nil {
			r.log.Warn("terminate during Close failed", "error", err)
		}
	}
	if r.recorder == nil {
		return nil
	}
	err := r.recorder.Close()
	r.recorder = nil
	return err
}

// launch resolves the script, merges configuration, runs before-start
// hooks, and spawns the child.
func (r *ScriptRunner) launch(args []string, rc runConfig) error {
	if r.IsRunning() {
		return fmt.Errorf("%s: %w", r.DisplayName(), ErrAlreadyStarted)
	}

	path, err := r.ScriptPath()
	if err != nil {
		return err
	}

	for _, h := range r.beforeStart {
		if err := h.invoke(r); err != nil {
			return fmt.Errorf("before-start hook %s: %w", h, err)
		}
	}

	env := r.baseEnviron().Merge(rc.env)
	cwd := rc.cwd
	if cwd == "" {
		cwd = r.cfg.cwd
	}

	runID := uuid.NewString()
	proc := process.New(script.Base(r.scriptName), r.log.With("run_id", runID))

	spec := process.Spec{
		Path: path,
		Args: args,
		Dir:  cwd,
		Env:  env.Slice(),
	}
	if err := proc.Start(spec); err != nil {
		return err
	}

	r.proc = proc
	r.runID = runID
	r.cmdline = append([]string{path}, args...)
	r.started = time.Now()
	return nil
}

// finish clears the child handle and fires after-terminate hooks.
func (r *ScriptRunner) finish() {
	r.proc = nil
	for _, h := range r.afterTerminate {
		if err := h.invoke(r); err != nil {
			r.log.Warn("after-terminate hook failed", "hook", h.String(), "error", err)
		}
	}
}

// buildResult assembles the immutable outcome of the just-finished run,
// attaching decoded JSON data when stdout parses.
func (r *ScriptRunner) buildResult(code int, stdout, stderr string) *Result {
	res := &Result{
		RunID:      r.runID,
		Cmdline:    r.cmdline,
		ReturnCode: code,
		Stdout:     stdout,
		Stderr:     stderr,
		Duration:   time.Since(r.started),
	}
	if data, ok := jsonutil.TryDecode(stdout); ok {
		res.Data = data
	}
	return res
}

// record persists the run outcome when history recording is enabled.
// Best-effort: failures are logged and never affect the run.
func (r *ScriptRunner) record(code int, stdout, stderr string, timedOut bool) {
	if r.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	entry := history.Entry{
		RunID:      r.runID,
		Script:     r.scriptName,
		Args:       r.cmdline[1:],
		ReturnCode: code,
		TimedOut:   timedOut,
		Stdout:     stdout,
		Stderr:     stderr,
		StartedAt:  r.started,
		Duration:   time.Since(r.started),
	}
	if err := r.recorder.Record(ctx, entry); err != nil {
		r.log.Warn("history record failed", "run_id", r.runID, "error", err)
	}
}

// effectiveTimeout resolves the timeout for one call: the per-call override
// when given, else the runner default (which New seeds with DefaultTimeout).
func (r *ScriptRunner) effectiveTimeout(rc runConfig) time.Duration {
	if rc.timeout > 0 {
		return rc.timeout
	}
	return r.cfg.timeout
}

// baseEnviron returns the default environment for a run: the configured one
// when set, otherwise a fresh snapshot of the ambient environment so
// changes between calls are honored.
func (r *ScriptRunner) baseEnviron() Environ {
	if r.cfg.environ != nil {
		return r.cfg.environ
	}
	return OSEnviron()
}

// searchPath returns the configured search list or PATH split lazily at
// call time, so environment changes between calls are honored.
func (r *ScriptRunner) searchPath() []string {
	if r.cfg.searchPath != nil {
		return r.cfg.searchPath
	}
	return filepath.SplitList(os.Getenv("PATH"))
}
