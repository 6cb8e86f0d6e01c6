package scriptenv

import (
	"errors"
	"reflect"
	"testing"
)

func TestHook_String(t *testing.T) {
	t.Parallel()

	noop := func(...any) error { return nil }

	tests := map[string]struct {
		hook Hook
		want string
	}{
		"no arguments": {
			hook: NewHook("prepare", noop),
			want: "prepare()",
		},
		"mixed arguments": {
			hook: NewHook("seed", noop, "fixtures", 2, true),
			want: "seed(fixtures, 2, true)",
		},
		"runner hook": {
			hook: NewRunnerHook("notify", func(*ScriptRunner) error { return nil }),
			want: "notify(runner)",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.hook.String(); got != tc.want {
				t.Errorf("String = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHook_InvokePassesBoundArgs(t *testing.T) {
	t.Parallel()

	var got []any
	h := NewHook("capture", func(args ...any) error {
		got = append(got, args...)
		return nil
	}, "one", 2)

	if err := h.invoke(nil); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"one", 2}) {
		t.Errorf("args = %v, want [one 2]", got)
	}
}

func TestHook_InvokePropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("hook failed")
	h := NewHook("broken", func(...any) error { return boom })

	if err := h.invoke(nil); !errors.Is(err, boom) {
		t.Errorf("invoke = %v, want %v", err, boom)
	}
}

func TestHook_ConstructorPanics(t *testing.T) {
	t.Parallel()

	tests := map[string]func(){
		"empty name":      func() { NewHook("", func(...any) error { return nil }) },
		"nil function":    func() { NewHook("name", nil) },
		"runner empty":    func() { NewRunnerHook("", func(*ScriptRunner) error { return nil }) },
		"runner nil func": func() { NewRunnerHook("name", nil) },
	}

	for name, construct := range tests {
		construct := construct
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			construct()
		})
	}
}
