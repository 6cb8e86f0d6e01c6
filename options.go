package scriptenv

import (
	"fmt"
	"time"
)

// DefaultTimeout is the effective run timeout when neither the runner nor
// the individual call configures one.
const DefaultTimeout = 30 * time.Second

// requirePositive panics when v <= 0 with a descriptive message.
func requirePositive(name string, v time.Duration) {
	if v <= 0 {
		panic(fmt.Sprintf("scriptenv: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics when s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("scriptenv: %s must not be empty", name))
	}
}

// config holds a runner's defaults, set at construction.
type config struct {
	timeout    time.Duration
	environ    Environ  // nil inherits the ambient environment per run
	cwd        string   // empty inherits the test process working directory
	searchPath []string // nil splits PATH at each resolution
	historyDB  string   // empty disables run-history recording
}

// Option configures a ScriptRunner during construction.
//
// The With* constructors panic on invalid input (non-positive durations,
// empty paths). Option values are typically literals at the call site, so
// an invalid one is a programmer error best failed fast, mirroring
// [regexp.MustCompile].
type Option func(*config)

// WithTimeout sets the runner's default run timeout, used when a call does
// not override it. Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	requirePositive("timeout", d)
	return func(c *config) {
		c.timeout = d
	}
}

// WithEnviron sets the runner's default environment, replacing ambient
// inheritance. Per-call environments are merged on top of it. Panics on a
// nil map; pass Environ{} for a deliberately empty environment.
func WithEnviron(env Environ) Option {
	if env == nil {
		panic("scriptenv: environ must not be nil")
	}
	return func(c *config) {
		c.environ = env.Clone()
	}
}

// WithCwd sets the default working directory for spawned children.
// Panics if dir is empty.
func WithCwd(dir string) Option {
	requireNonEmpty("working directory", dir)
	return func(c *config) {
		c.cwd = dir
	}
}

// WithSearchPath replaces the PATH-derived search list used to resolve bare
// script names, making resolution independent of ambient process state.
// Panics on an empty list.
func WithSearchPath(dirs []string) Option {
	if len(dirs) == 0 {
		panic("scriptenv: search path must not be empty")
	}
	return func(c *config) {
		c.searchPath = append([]string(nil), dirs...)
	}
}

// WithHistoryDB enables run-history recording into the SQLite database at
// path, creating it if needed. Recording is best-effort and never fails a
// run. Panics if path is empty.
func WithHistoryDB(path string) Option {
	requireNonEmpty("history database path", path)
	return func(c *config) {
		c.historyDB = path
	}
}

// runConfig holds per-call overrides; zero values mean "use the runner default".
type runConfig struct {
	timeout time.Duration
	env     Environ
	cwd     string
}

// RunOption configures a single Run or Start call.
type RunOption func(*runConfig)

// WithRunTimeout overrides the runner's default timeout for this call only.
// Panics if d <= 0.
func WithRunTimeout(d time.Duration) RunOption {
	requirePositive("run timeout", d)
	return func(c *runConfig) {
		c.timeout = d
	}
}

// WithRunEnv merges env on top of the runner's default environment for this
// call only; colliding keys take the per-call value.
func WithRunEnv(env Environ) RunOption {
	return func(c *runConfig) {
		c.env = env.Clone()
	}
}

// WithRunCwd overrides the working directory for this call only.
// Panics if dir is empty.
func WithRunCwd(dir string) RunOption {
	requireNonEmpty("run working directory", dir)
	return func(c *runConfig) {
		c.cwd = dir
	}
}
