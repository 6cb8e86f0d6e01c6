//go:build !windows

package script

import "io/fs"

// Unix has no executable-suffix convention; only the bare name is probed.
var execSuffixes = []string{""}

// isExecutableMode reports whether any execute bit is set.
func isExecutableMode(mode fs.FileMode) bool {
	return mode&0o111 != 0
}
