// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists the identifiers of papers that have already
// been offered for notification, so that no paper is announced twice.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one persisted sent-paper record. Entries are never updated
// or deleted; once a paper is recorded it stays recorded.
type Entry struct {
	PaperID    string    `json:"paper_id" yaml:"paper_id"`
	Title      string    `json:"title" yaml:"title"`
	SentAt     time.Time `json:"sent_at" yaml:"sent_at"`
	Categories []string  `json:"categories" yaml:"categories"`
}

// Store manages the sent-papers SQLite database.
type Store struct {
	db *sql.DB

	// now is the clock used for sent_date stamps. Tests override it.
	now func() time.Time
}

// Open opens or creates the sent-papers database at path, creating the
// parent directory and schema if needed. Failure here is fatal to the
// run; there is no per-call recovery.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sent_papers (
		paper_id TEXT PRIMARY KEY,
		title TEXT,
		sent_date TEXT,
		categories TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Has reports whether a paper identifier is already recorded.
func (s *Store) Has(ctx context.Context, paperID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM sent_papers WHERE paper_id = ?`, paperID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying ledger: %w", err)
	}
	return n > 0, nil
}

// Snapshot returns the set of all recorded identifiers, for batch
// membership testing without a round trip per candidate.
func (s *Store) Snapshot(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT paper_id FROM sent_papers`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		known[id] = struct{}{}
	}
	return known, rows.Err()
}

// Record inserts a sent-paper entry. Recording an identifier that
// already exists is a no-op, so a retried commit step cannot corrupt
// or duplicate the ledger.
func (s *Store) Record(ctx context.Context, paperID, title string, categories []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sent_papers (paper_id, title, sent_date, categories) VALUES (?, ?, ?, ?)`,
		paperID, title, s.now().UTC().Format(time.RFC3339), strings.Join(categories, ","),
	)
	if err != nil {
		return fmt.Errorf("recording paper %s: %w", paperID, err)
	}
	return nil
}

// Entries returns all recorded entries, most recent first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id, title, sent_date, categories FROM sent_papers ORDER BY sent_date DESC, paper_id`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var sentDate, categories string
		if err := rows.Scan(&e.PaperID, &e.Title, &sentDate, &categories); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, sentDate); parseErr == nil {
			e.SentAt = t
		}
		if categories != "" {
			e.Categories = strings.Split(categories, ",")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM sent_papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting ledger entries: %w", err)
	}
	return n, nil
}
