// Package core holds shared library-level state: the package logger.
package core
