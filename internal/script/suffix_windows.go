//go:build windows

package script

import "io/fs"

// execSuffixes are probed in priority order for bare-name lookups. The bare
// identifier is tried first so explicit names like "tool.exe" keep working.
var execSuffixes = []string{"", ".exe", ".com", ".bat", ".cmd"}

// isExecutableMode always reports true on Windows, where executability is a
// matter of file extension rather than permission bits.
func isExecutableMode(fs.FileMode) bool {
	return true
}
