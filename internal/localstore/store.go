// Package localstore keeps tripdash's local profile in a SQLite file: the
// analogue of browser local storage for a command-line session.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SelectedTripKey is the local_state key holding the selected trip id.
const SelectedTripKey = "selectedTripId"

// Store is a SQLite-backed key/value profile. It satisfies tripctx.Store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the profile database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("localstore.Open: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore.Open: %w", err)
	}
	// One connection keeps every write visible to the next read.
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS local_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("localstore.Open: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key; ok is false when there is none.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("localstore.Store.Get: %w", err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("localstore.Store.Set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("localstore.Store.Delete: %w", err)
	}
	return nil
}

// Load returns the persisted selected trip id.
func (s *Store) Load(ctx context.Context) (uuid.UUID, bool, error) {
	v, ok, err := s.Get(ctx, SelectedTripKey)
	if err != nil || !ok {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("localstore.Store.Load: stored value %q: %w", v, err)
	}
	return id, true, nil
}

// Save persists id as the selected trip.
func (s *Store) Save(ctx context.Context, id uuid.UUID) error {
	return s.Set(ctx, SelectedTripKey, id.String())
}

// Clear forgets the selected trip.
func (s *Store) Clear(ctx context.Context) error {
	return s.Delete(ctx, SelectedTripKey)
}
