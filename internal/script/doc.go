// Package script resolves a script identifier to an absolute executable path.
//
// Resolution is performed on demand, never cached, so environment and
// filesystem changes between calls are honored. The search list is passed in
// explicitly to keep lookups deterministic and testable.
package script
