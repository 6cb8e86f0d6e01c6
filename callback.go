package scriptenv

import (
	"fmt"
	"slices"
	"strings"
)

// HookFunc is a generic hook invoked with its pre-bound arguments.
type HookFunc func(args ...any) error

// RunnerHookFunc is a lifecycle hook invoked with the owning runner, so it
// can inspect liveness, pid, or display name at the moment it fires.
type RunnerHookFunc func(r *ScriptRunner) error

// Hook pairs a function with pre-bound arguments and a name used to render
// the pending call in diagnostics. A Hook is immutable once constructed;
// invoking it always applies the bound arguments verbatim.
type Hook struct {
	name      string
	args      []any
	generic   HookFunc
	lifecycle RunnerHookFunc
}

// NewHook builds a generic hook. The arguments are captured at construction
// and passed verbatim on every invocation. Panics on an empty name or nil
// function: both are programmer errors that would only surface later as
// unreadable diagnostics or a nil call.
func NewHook(name string, fn HookFunc, args ...any) Hook {
	if name == "" {
		panic("scriptenv: hook name must not be empty")
	}
	if fn == nil {
		panic("scriptenv: hook function must not be nil")
	}
	return Hook{name: name, generic: fn, args: slices.Clone(args)}
}

// NewRunnerHook builds a lifecycle hook that receives the owning runner.
// Panics on an empty name or nil function.
func NewRunnerHook(name string, fn RunnerHookFunc) Hook {
	if name == "" {
		panic("scriptenv: hook name must not be empty")
	}
	if fn == nil {
		panic("scriptenv: hook function must not be nil")
	}
	return Hook{name: name, lifecycle: fn}
}

// String renders the pending call, e.g. "prepare(dir, 2)" or "notify(runner)".
func (h Hook) String() string {
	if h.lifecycle != nil {
		return h.name + "(runner)"
	}
	parts := make([]string, len(h.args))
	for i, a := range h.args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return h.name + "(" + strings.Join(parts, ", ") + ")"
}

// invoke runs the hook against its bound arguments.
func (h Hook) invoke(r *ScriptRunner) error {
	if h.lifecycle != nil {
		return h.lifecycle(r)
	}
	return h.generic(h.args...)
}
