// Package runstore keeps a history of pipeline runs and their skipped
// entries in a local SQLite database.
package runstore

import (
	"context"
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded batch.
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	Command     string    `json:"command" yaml:"command"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time `json:"finished_at" yaml:"finished_at"`
	Processed   int       `json:"processed" yaml:"processed"`
	Succeeded   int       `json:"succeeded" yaml:"succeeded"`
	Failed      int       `json:"failed" yaml:"failed"`
	Interrupted bool      `json:"interrupted" yaml:"interrupted"`
	Summary     string    `json:"summary" yaml:"summary"`
}

// Failure is one skipped item of a run.
type Failure struct {
	Item   string `json:"item" yaml:"item"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

// Store is a run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.WrapResource("open", "report database", path, err)
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := migrate(db); err != nil {
		db.Close() //nolint:errcheck,gosec
		return nil, errors.WrapResource("migrate", "report database", path, err)
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record saves a run and its failures in one transaction. A run without an
// ID gets a new one, which is returned.
func (s *Store) Record(ctx context.Context, run Run, failures []Failure) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.WrapResource("save", "run", run.ID, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, command, started_at, finished_at, processed, succeeded, failed, interrupted, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.Processed, run.Succeeded, run.Failed, run.Interrupted, run.Summary,
	)
	if err != nil {
		return "", errors.WrapResource("save", "run", run.ID, err)
	}

	for _, f := range failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_failures (run_id, item, name, reason) VALUES (?, ?, ?, ?)`,
			run.ID, f.Item, f.Name, f.Reason,
		); err != nil {
			return "", errors.WrapResource("save", "run failure", f.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.WrapResource("save", "run", run.ID, err)
	}
	return run.ID, nil
}

// Runs lists recorded runs, newest first. A limit of zero or less lists all.
// An empty command matches every command.
func (s *Store) Runs(ctx context.Context, command string, limit int) ([]Run, error) {
	query := `SELECT id, command, started_at, finished_at, processed, succeeded, failed, interrupted, summary FROM runs`
	var args []any
	if command != "" {
		query += ` WHERE command = ?`
		args = append(args, command)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapResource("load", "runs", "", err)
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Command, &r.StartedAt, &r.FinishedAt,
			&r.Processed, &r.Succeeded, &r.Failed, &r.Interrupted, &r.Summary); err != nil {
			return nil, errors.WrapResource("load", "runs", "", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns one run.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, command, started_at, finished_at, processed, succeeded, failed, interrupted, summary
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Command, &r.StartedAt, &r.FinishedAt,
		&r.Processed, &r.Succeeded, &r.Failed, &r.Interrupted, &r.Summary)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "run", ID: id}
	}
	if err != nil {
		return nil, errors.WrapResource("load", "run", id, err)
	}
	return &r, nil
}

// Failures returns the failures of a run in the order they were recorded.
func (s *Store) Failures(ctx context.Context, runID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item, name, reason FROM run_failures WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, errors.WrapResource("load", "run failures", runID, err)
	}
	defer rows.Close() //nolint:errcheck

	failures := []Failure{}
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Item, &f.Name, &f.Reason); err != nil {
			return nil, errors.WrapResource("load", "run failures", runID, err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// Prune deletes runs that started before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, errors.WrapResource("prune", "runs", "", err)
	}
	return res.RowsAffected()
}
