package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status is the outcome of one import run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Entry is one recorded import run.
type Entry struct {
	ID         int64
	RunID      string
	WikiURL    string
	WikiTitle  string
	Status     Status
	Strategy   string
	Parameters int
	Outputs    int
	Inferred   int
	ItemName   *string
	ItemHash   *int64
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is how long the run took.
func (e Entry) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}

// Store persists import history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record appends an entry and returns its id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (
            run_id, wiki_url, wiki_title, status, strategy,
            parameters, outputs, inferred, item_name, item_hash,
            error_message, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID,
		e.WikiURL,
		nullableString(e.WikiTitle),
		string(e.Status),
		nullableString(e.Strategy),
		e.Parameters,
		e.Outputs,
		e.Inferred,
		nullableStringPtr(e.ItemName),
		nullableInt64Ptr(e.ItemHash),
		nullableString(e.Error),
		formatTime(e.StartedAt),
		formatTime(e.FinishedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert import: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

const entryColumns = `id, run_id, wiki_url, wiki_title, status, strategy,
    parameters, outputs, inferred, item_name, item_hash,
    error_message, started_at, finished_at`

// List returns up to limit entries, newest first. A limit <= 0 returns all.
// A non-empty title restricts the result to that wiki title.
func (s *Store) List(ctx context.Context, title string, limit int) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM imports`
	var args []any
	if title != "" {
		query += ` WHERE wiki_title = ?`
		args = append(args, title)
	}
	query += ` ORDER BY finished_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                             Entry
		title, strategy, errMsg       sql.NullString
		itemName                      sql.NullString
		itemHash                      sql.NullInt64
		status, startedAt, finishedAt string
	)
	if err := rows.Scan(
		&e.ID, &e.RunID, &e.WikiURL, &title, &status, &strategy,
		&e.Parameters, &e.Outputs, &e.Inferred, &itemName, &itemHash,
		&errMsg, &startedAt, &finishedAt,
	); err != nil {
		return Entry{}, fmt.Errorf("scan import: %w", err)
	}
	e.WikiTitle = title.String
	e.Strategy = strategy.String
	e.Error = errMsg.String
	e.Status = Status(status)
	if itemName.Valid {
		name := itemName.String
		e.ItemName = &name
	}
	if itemHash.Valid {
		hash := itemHash.Int64
		e.ItemHash = &hash
	}
	e.StartedAt = parseTime(startedAt)
	e.FinishedAt = parseTime(finishedAt)
	return e, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableStringPtr(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt64Ptr(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
