package scriptenv

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

// Environ is a process environment: string keys to string values. It renders
// distinguishably in diagnostics so an environment is never mistaken for an
// arbitrary map. Merging follows last-write-wins semantics.
type Environ map[string]string

// OSEnviron snapshots the ambient process environment.
func OSEnviron() Environ {
	raw := os.Environ()
	env := make(Environ, len(raw))
	for _, kv := range raw {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Clone returns an independent copy.
func (e Environ) Clone() Environ {
	return maps.Clone(e)
}

// Merge returns a new Environ with overrides layered on top of e. Neither
// input is modified; on key collisions the override wins.
func (e Environ) Merge(overrides Environ) Environ {
	merged := make(Environ, len(e)+len(overrides))
	maps.Copy(merged, e)
	maps.Copy(merged, overrides)
	return merged
}

// sortedKeys returns the keys in sorted order. (slices.Sorted(maps.Keys(e))
// needs Go 1.23 iterators; this is the pre-1.23 equivalent.)
func (e Environ) sortedKeys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Slice converts to the KEY=VALUE form expected by process spawning, with
// keys sorted so spawn specs are deterministic.
func (e Environ) Slice() []string {
	kv := make([]string, 0, len(e))
	for _, k := range e.sortedKeys() {
		kv = append(kv, k+"="+e[k])
	}
	return kv
}

// String renders the environment as Environ{K=V, ...} with sorted keys.
func (e Environ) String() string {
	var b strings.Builder
	b.WriteString("Environ{")
	for i, k := range e.sortedKeys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", k, e[k])
	}
	b.WriteString("}")
	return b.String()
}
