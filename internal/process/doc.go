// Package process owns the child-process engine: spawning a single child,
// draining its standard streams into memory, supervising it under a
// wall-clock watchdog, and the SIGTERM-then-SIGKILL shutdown sequence.
package process
