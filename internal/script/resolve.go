package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/scriptenv/internal/sentinel"
)

// ErrNotFound is returned when a script identifier cannot be resolved to an
// existing executable file. Wrapped errors always name the identifier that
// was requested.
const ErrNotFound = sentinel.Error("script not found")

// Resolve maps identifier to an absolute path of an existing executable.
//
// An identifier that contains a path separator (or is absolute) is validated
// for existence and returned in absolute form without searching. A bare name
// is probed against each directory in searchPath, trying the platform's
// executable suffixes in priority order. Empty search entries are skipped.
func Resolve(identifier string, searchPath []string) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("script %q: %w", identifier, ErrNotFound)
	}

	// Explicit paths are only validated for existence; the executable-bit
	// requirement applies to PATH search hits alone.
	if filepath.IsAbs(identifier) || strings.ContainsAny(identifier, `/\`) {
		if info, err := os.Stat(identifier); err != nil || !info.Mode().IsRegular() {
			return "", fmt.Errorf("script %q: %w", identifier, ErrNotFound)
		}
		abs, err := filepath.Abs(identifier)
		if err != nil {
			return "", fmt.Errorf("script %q: %w", identifier, err)
		}
		return abs, nil
	}

	for _, dir := range searchPath {
		if dir == "" {
			continue
		}
		for _, suffix := range execSuffixes {
			candidate := filepath.Join(dir, identifier+suffix)
			if !isExecutableFile(candidate) {
				continue
			}
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", fmt.Errorf("script %q: %w", identifier, err)
			}
			return abs, nil
		}
	}

	return "", fmt.Errorf("script %q: %w", identifier, ErrNotFound)
}

// Base returns the directory-stripped display name for an identifier,
// independent of whether it was a bare name or a full path.
func Base(identifier string) string {
	return filepath.Base(identifier)
}

// isExecutableFile reports whether path names an existing regular file that
// the platform considers executable.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return isExecutableMode(info.Mode())
}
