// Package scriptenv runs external scripts and programs from Go test suites,
// supervising each child under a wall-clock timeout and capturing its output
// deterministically.
//
// A ScriptRunner is constructed once per executable and reused across
// sequential runs. Each run resolves the executable path (honoring the
// platform's executable-suffix conventions), spawns the child with a merged
// environment, drains stdout and stderr continuously, and either returns a
// Result or terminates the child and reports a timeout. Stdout that parses
// as JSON is additionally decoded into Result.Data on a best-effort basis.
//
// # Basic usage
//
//	runner := scriptenv.New("python3", scriptenv.WithTimeout(30*time.Second))
//	result, err := runner.Run([]string{script})
//	if err != nil {
//		t.Fatalf("run failed: %v", err)
//	}
//	if result.ReturnCode != 0 {
//		t.Fatalf("unexpected exit:\n%s", result)
//	}
//
// # Long-lived processes
//
// Start, IsRunning, and Terminate launch a child without blocking to
// completion, poll its liveness, and force-stop it:
//
//	if err := runner.Start([]string{script}); err != nil { ... }
//	defer runner.Terminate()
//
// A runner owns at most one child at a time; tests needing parallel
// processes use separate runners. Cancellation is exclusively
// timeout-driven: a run ends when the child exits, the effective timeout
// elapses, or Terminate is called on a started runner.
package scriptenv
