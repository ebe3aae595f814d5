// Package repository provides persistence implementations backing the
// authentication and content services.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLCredentialStore implements the credential key-value store over a SQL
// database. One row per key; the whole admin credential record (hashes, setup
// flag, failure counter, lockout timestamp) lives in this table.
type SQLCredentialStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewSQLCredentialStore creates a new SQLCredentialStore with the given
// database connection.
func NewSQLCredentialStore(db *sql.DB) *SQLCredentialStore {
	return &SQLCredentialStore{DB: db}
}

// Get returns the value stored under key, or "" if the key is absent.
// Absence is a normal outcome, not an error.
func (s *SQLCredentialStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT value FROM admin_credentials WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, inserting or overwriting.
func (s *SQLCredentialStore) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO admin_credentials (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Deleting an absent key is a no-op.
func (s *SQLCredentialStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.DB.ExecContext(
			ctx,
			`DELETE FROM admin_credentials WHERE key = $1`,
			key,
		); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}
