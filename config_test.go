package scriptenv

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeDefaults(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".scriptenv.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write defaults file: %v", err)
	}
	return path
}

func applyOptions(opts []Option) config {
	cfg := config{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields no options", func(t *testing.T) {
		t.Parallel()

		opts, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("LoadOptions: %v", err)
		}
		if opts != nil {
			t.Errorf("opts = %v, want nil", opts)
		}
	})

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeDefaults(t, `
timeout: 90s
cwd: /tmp/work
environ:
  FOO: foo
history_db: /tmp/runs.db
`)
		opts, err := LoadOptions(path)
		if err != nil {
			t.Fatalf("LoadOptions: %v", err)
		}

		cfg := applyOptions(opts)
		if cfg.timeout != 90*time.Second {
			t.Errorf("timeout = %v, want 90s", cfg.timeout)
		}
		if cfg.cwd != "/tmp/work" {
			t.Errorf("cwd = %q, want /tmp/work", cfg.cwd)
		}
		if !reflect.DeepEqual(cfg.environ, Environ{"FOO": "foo"}) {
			t.Errorf("environ = %v", cfg.environ)
		}
		if cfg.historyDB != "/tmp/runs.db" {
			t.Errorf("historyDB = %q", cfg.historyDB)
		}
	})

	t.Run("partial file leaves defaults alone", func(t *testing.T) {
		t.Parallel()

		path := writeDefaults(t, "cwd: /tmp/only\n")
		opts, err := LoadOptions(path)
		if err != nil {
			t.Fatalf("LoadOptions: %v", err)
		}

		cfg := applyOptions(opts)
		if cfg.timeout != DefaultTimeout {
			t.Errorf("timeout = %v, want default %v", cfg.timeout, DefaultTimeout)
		}
		if cfg.cwd != "/tmp/only" {
			t.Errorf("cwd = %q", cfg.cwd)
		}
		if cfg.environ != nil || cfg.historyDB != "" {
			t.Errorf("unexpected fields set: %+v", cfg)
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		t.Parallel()

		path := writeDefaults(t, "timeout: [unclosed\n")
		if _, err := LoadOptions(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("unparsable timeout errors", func(t *testing.T) {
		t.Parallel()

		path := writeDefaults(t, "timeout: banana\n")
		if _, err := LoadOptions(path); err == nil {
			t.Error("expected timeout parse error")
		}
	})

	t.Run("non-positive timeout errors", func(t *testing.T) {
		t.Parallel()

		path := writeDefaults(t, "timeout: -5s\n")
		if _, err := LoadOptions(path); err == nil {
			t.Error("expected non-positive timeout error")
		}
	})
}
