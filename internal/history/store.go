package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned by Get when no run matches the identifier.
	ErrNotFound = errors.New("run not found")
	// ErrAmbiguousID is returned by Get when a prefix matches several runs.
	ErrAmbiguousID = errors.New("run id prefix is ambiguous")
)

const lockRetryDelay = 50 * time.Millisecond

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
	keep int
}

// Open initializes or connects to the database at path. keep bounds the
// number of runs retained after each Record; zero keeps everything.
func Open(ctx context.Context, path string, keep int) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("open history: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas below are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
		keep: keep,
	}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run and prunes old runs beyond the retention limit.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("record run: empty id")
	}
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return errors.New("acquire history lock: not acquired")
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, created_at, input_name, input_digest, status, error_message,
            file_count, sync_count, ambiguity_count, unassigned_count,
            equations, variables, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.InputName,
		run.InputDigest,
		string(run.Status),
		nullableString(run.Error),
		run.Files,
		run.Syncs,
		run.Ambiguities,
		run.Unassigned,
		run.Equations,
		run.Variables,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, sol := range run.Solutions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, position, name, file_type, length, time_offset, time_scale)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, sol.Name, sol.Type, sol.Length, sol.Offset, sol.Scale,
		)
		if err != nil {
			return fmt.Errorf("insert run file %s: %w", sol.Name, err)
		}
	}

	if s.keep > 0 {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM runs WHERE id NOT IN (
                SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
            )`,
			s.keep,
		)
		if err != nil {
			return fmt.Errorf("prune runs: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// List returns the newest runs first, without per-file solutions. A limit of
// zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := runColumns + " ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get fetches a run with its solutions by full id or unique id prefix.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, runColumns+" WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2", id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	var run Run
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(matches) == 1:
		run = matches[0]
	case matches[0].ID == id:
		run = matches[0]
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}

	solutions, err := s.solutions(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Solutions = solutions
	return &run, nil
}

func (s *Store) solutions(ctx context.Context, runID string) ([]FileSolution, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, file_type, length, time_offset, time_scale FROM run_files WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var out []FileSolution
	for rows.Next() {
		var sol FileSolution
		if err := rows.Scan(&sol.Name, &sol.Type, &sol.Length, &sol.Offset, &sol.Scale); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		out = append(out, sol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return out, nil
}
