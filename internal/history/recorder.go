// Package history persists run outcomes to a SQLite database so failed test
// runs can be inspected after the fact. Recording is an optional,
// best-effort feature; it never influences a run's result.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"

	"github.com/giantswarm/scriptenv/internal/core"
)

// initLockRetryInterval is the interval between attempts to take the schema
// initialization lock. 50ms keeps the wait short after the holder releases
// without busy-spinning.
const initLockRetryInterval = 50 * time.Millisecond

// initLockTimeout bounds how long Open waits for the initialization lock
// when another test process is creating the schema concurrently.
const initLockTimeout = 10 * time.Second

// Entry is one recorded run.
type Entry struct {
	RunID      string
	Script     string
	Args       []string
	ReturnCode int
	TimedOut   bool
	Stdout     string
	Stderr     string
	StartedAt  time.Time
	Duration   time.Duration
}

// Recorder writes run entries into a SQLite database. Safe for sequential
// use by one runner; parallel test processes may share the same database
// file, which is why schema creation happens under a cross-process lock and
// the connection carries a generous busy timeout.
type Recorder struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates or opens the history database at path and ensures the schema
// exists. Schema initialization is guarded by a file lock next to the
// database so concurrent test processes cannot race the DDL. The lock file
// is left on disk; removing it could invalidate a lock held by another
// process.
func Open(path string, logger *slog.Logger) (*Recorder, error) {
	if path == "" {
		return nil, fmt.Errorf("history: database path must not be empty")
	}
	if logger == nil {
		logger = core.Logger()
	}

	// WAL and a busy timeout match concurrent writers from parallel test
	// processes; NORMAL synchronous is acceptable for throwaway test data.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db, path); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Recorder{db: db, log: logger}, nil
}

// initSchema creates the runs table under the cross-process file lock.
func initSchema(db *sql.DB, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), initLockTimeout)
	defer cancel()

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, initLockRetryInterval)
	if err != nil {
		return fmt.Errorf("history: acquire init lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("history: init lock %s not acquired", fl.Path())
	}
	// Close releases the lock and the descriptor in one step.
	defer func() { _ = fl.Close() }()

	const ddl = `
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			script      TEXT NOT NULL,
			args        TEXT NOT NULL,
			return_code INTEGER NOT NULL,
			timed_out   INTEGER NOT NULL,
			stdout      TEXT NOT NULL,
			stderr      TEXT NOT NULL,
			started_at  TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	return nil
}

// Record inserts one run entry.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	args, err := json.Marshal(e.Args)
	if err != nil {
		return fmt.Errorf("history: encode args: %w", err)
	}

	const insert = `
		INSERT INTO runs (id, script, args, return_code, timed_out, stdout, stderr, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, insert,
		e.RunID, e.Script, string(args), e.ReturnCode, boolToInt(e.TimedOut),
		e.Stdout, e.Stderr, e.StartedAt.UTC().Format(time.RFC3339Nano),
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("history: insert run %s: %w", e.RunID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	const query = `
		SELECT id, script, args, return_code, timed_out, stdout, stderr, started_at, duration_ms
		FROM runs ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			argsJSON   string
			timedOut   int
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&e.RunID, &e.Script, &argsJSON, &e.ReturnCode,
			&timedOut, &e.Stdout, &e.Stderr, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &e.Args); err != nil {
			return nil, fmt.Errorf("history: decode args for %s: %w", e.RunID, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("history: parse timestamp for %s: %w", e.RunID, err)
		}
		e.TimedOut = timedOut != 0
		e.StartedAt = ts
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return entries, nil
}

// Close closes the database handle.
func (r *Recorder) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("history: close: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
