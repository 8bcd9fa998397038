// Package sqlite stores the passage collection artifact of an index
// snapshot in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lexidx/lexidx/internal/core/domain"
)

// schema holds the passage table. The position column is the explicit
// passage identifier shared with the embedding matrix and the vector
// index; LoadPassages verifies it forms the contiguous sequence 0..n-1.
const schema = `
CREATE TABLE IF NOT EXISTS passages (
	position     INTEGER PRIMARY KEY,
	text         TEXT    NOT NULL,
	source_title TEXT    NOT NULL,
	source_url   TEXT    NOT NULL,
	chunk_index  INTEGER NOT NULL
);`

// PassageStore persists the passage collection in a SQLite file.
type PassageStore struct {
	db   *sql.DB
	path string
}

// NewPassageStore opens (creating if necessary) the passage database
// at the given path.
func NewPassageStore(path string) (*PassageStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening passage database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating passage schema: %w", err)
	}
	return &PassageStore{db: db, path: path}, nil
}

// SavePassages replaces the stored collection with the given passages
// in a single transaction.
func (s *PassageStore) SavePassages(ctx context.Context, passages []domain.Passage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		return fmt.Errorf("clearing passages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO passages (position, text, source_title, source_url, chunk_index) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range passages {
		if _, err := stmt.ExecContext(ctx, p.Position, p.Text, p.SourceTitle, p.SourceURL, p.ChunkIndex); err != nil {
			return fmt.Errorf("inserting passage %d: %w", p.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing passages: %w", err)
	}
	return nil
}

// LoadPassages returns the stored collection in position order.
// Returns domain.ErrSnapshotInvalid when the positions are not the
// contiguous sequence 0..n-1.
func (s *PassageStore) LoadPassages(ctx context.Context) ([]domain.Passage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT position, text, source_title, source_url, chunk_index FROM passages ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying passages: %w", err)
	}
	defer rows.Close()

	var passages []domain.Passage
	for rows.Next() {
		var p domain.Passage
		if err := rows.Scan(&p.Position, &p.Text, &p.SourceTitle, &p.SourceURL, &p.ChunkIndex); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		if p.Position != len(passages) {
			return nil, fmt.Errorf("%w: passage positions not contiguous at %d", domain.ErrSnapshotInvalid, p.Position)
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}
	return passages, nil
}

// Count returns the number of stored passages.
func (s *PassageStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&n)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("counting passages: %w", err)
	}
	return n, nil
}

// Path returns the database file location.
func (s *PassageStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *PassageStore) Close() error {
	return s.db.Close()
}
