// Package history keeps a local journal of tray actions in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yllada/twingate-tray/common"
)

// Outcome is the result of a journaled action.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Entry is one dispatched action.
type Entry struct {
	ID           string
	Time         time.Time
	Action       string
	ResourceID   string
	ResourceName string
	Outcome      Outcome
	Error        string
}

const schema = `
CREATE TABLE IF NOT EXISTS actions (
	id            TEXT PRIMARY KEY,
	at            INTEGER NOT NULL,
	action        TEXT NOT NULL,
	resource_id   TEXT NOT NULL DEFAULT '',
	resource_name TEXT NOT NULL DEFAULT '',
	outcome       TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS actions_at ON actions(at);
`

// Store is a SQLite-backed action journal.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// DefaultPath returns the journal location under the data directory.
func DefaultPath() (string, error) {
	dir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.HistoryFileName), nil
}

// Open opens or creates the journal at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// A single connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends entry.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrJournalClosed
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO actions (id, at, action, resource_id, resource_name, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Time.UnixMilli(), entry.Action, entry.ResourceID,
		entry.ResourceName, string(entry.Outcome), entry.Error)
	if err != nil {
		return fmt.Errorf("record action %s: %w", entry.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, common.ErrJournalClosed
	}
	if limit <= 0 {
		limit = common.DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, action, resource_id, resource_name, outcome, error
		 FROM actions ORDER BY at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			at      int64
			outcome string
		)
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.ResourceID, &e.ResourceName, &outcome, &e.Error); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Time = time.UnixMilli(at)
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database. Later calls fail with common.ErrJournalClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
