package scriptenv

import (
	"testing"
	"time"
)

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	tests := map[string]func(){
		"zero timeout":       func() { WithTimeout(0) },
		"negative timeout":   func() { WithTimeout(-time.Second) },
		"nil environ":        func() { WithEnviron(nil) },
		"empty cwd":          func() { WithCwd("") },
		"empty search path":  func() { WithSearchPath(nil) },
		"empty history path": func() { WithHistoryDB("") },
		"zero run timeout":   func() { WithRunTimeout(0) },
		"empty run cwd":      func() { WithRunCwd("") },
		"empty script name":  func() { New("") },
	}

	for name, call := range tests {
		call := call
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			call()
		})
	}
}

func TestWithEnviron_Clones(t *testing.T) {
	t.Parallel()

	env := Environ{"FOO": "foo"}
	var cfg config
	WithEnviron(env)(&cfg)

	env["FOO"] = "mutated"
	if cfg.environ["FOO"] != "foo" {
		t.Errorf("option shares storage with caller's map: %v", cfg.environ)
	}
}

func TestWithSearchPath_Copies(t *testing.T) {
	t.Parallel()

	dirs := []string{"/a", "/b"}
	var cfg config
	WithSearchPath(dirs)(&cfg)

	dirs[0] = "/mutated"
	if cfg.searchPath[0] != "/a" {
		t.Errorf("option shares storage with caller's slice: %v", cfg.searchPath)
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	t.Parallel()

	runner := New("sh")
	if runner.cfg.timeout != DefaultTimeout {
		t.Errorf("default timeout = %v, want %v", runner.cfg.timeout, DefaultTimeout)
	}
}
