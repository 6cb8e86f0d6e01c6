//go:build !windows

package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeScript creates an executable shell script under dir and returns its path.
func writeScript(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestResolve_AbsolutePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeScript(t, dir, "tool.sh")

	got, err := Resolve(path, nil)
	if err != nil {
		t.Fatalf("Resolve(%q) = %v", path, err)
	}
	if got != path {
		t.Errorf("Resolve(%q) = %q, want %q", path, got, path)
	}
}

func TestResolve_AbsolutePathMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-tool")
	_, err := Resolve(missing, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q should name the requested identifier %q", err, missing)
	}
}

func TestResolve_BareNameViaSearchPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeScript(t, dir, "mytool")

	got, err := Resolve("mytool", []string{dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_BareNameMatchesAbsoluteResolution(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := writeScript(t, dir, "samecheck")

	byName, err := Resolve("samecheck", []string{dir})
	if err != nil {
		t.Fatalf("Resolve by name: %v", err)
	}
	byPath, err := Resolve(abs, nil)
	if err != nil {
		t.Fatalf("Resolve by path: %v", err)
	}
	if byName != byPath {
		t.Errorf("bare name resolved to %q, absolute path to %q; want identical", byName, byPath)
	}
}

func TestResolve_SearchPathOrder(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	want := writeScript(t, first, "dup")
	writeScript(t, second, "dup")

	got, err := Resolve("dup", []string{first, second})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want first-match %q", got, want)
	}
}

func TestResolve_SkipsNonExecutable(t *testing.T) {
	t.Parallel()

	noExec := t.TempDir()
	exec := t.TempDir()
	plain := filepath.Join(noExec, "tool")
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	want := writeScript(t, exec, "tool")

	got, err := Resolve("tool", []string{noExec, exec})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want executable match %q", got, want)
	}
}

func TestResolve_SkipsDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "tool"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Resolve("tool", []string{dir})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for directory match, got %v", err)
	}
}

func TestResolve_NotFoundNamesIdentifier(t *testing.T) {
	t.Parallel()

	const name = "definitely-not-installed-3.100"
	_, err := Resolve(name, []string{t.TempDir()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), name) {
		t.Errorf("error %q should contain %q", err, name)
	}
}

func TestResolve_EmptyIdentifier(t *testing.T) {
	t.Parallel()

	_, err := Resolve("", []string{"/usr/bin"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_IgnoresEmptySearchEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeScript(t, dir, "padded")

	got, err := Resolve("padded", []string{"", dir, ""})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_RelativePathWithSeparator(t *testing.T) {
	// Not parallel: t.Chdir does not allow it.
	dir := t.TempDir()
	writeScript(t, dir, "rel.sh")

	// t.Chdir needs Go 1.24; emulate it for older toolchains.
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("Chdir back: %v", err)
		}
	})

	got, err := Resolve("./rel.sh", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Resolve = %q, want absolute path", got)
	}
	if filepath.Base(got) != "rel.sh" {
		t.Errorf("Resolve = %q, want base rel.sh", got)
	}
}

func TestBase(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		identifier string
		want       string
	}{
		"bare name":     {identifier: "python3", want: "python3"},
		"absolute path": {identifier: "/usr/bin/python3", want: "python3"},
		"relative path": {identifier: "./bin/run.sh", want: "run.sh"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := Base(tc.identifier); got != tc.want {
				t.Errorf("Base(%q) = %q, want %q", tc.identifier, got, tc.want)
			}
		})
	}
}
