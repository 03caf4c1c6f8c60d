// Package session persists the logged-in user's credentials between runs.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alertemedicaments/prescription-scan/internal/core/catalog"
	"github.com/alertemedicaments/prescription-scan/internal/shared/database"
)

const (
	keyToken     = "auth_token"
	keyUserID    = "user_id"
	keyUserEmail = "user_email"
	keyUserName  = "user_name"
)

// Store keeps the session in a key/value table.
type Store struct {
	db *database.DB
}

// NewStore creates the table if needed.
func NewStore(ctx context.Context, db *database.DB) (*Store, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}
	return &Store{db: db}, nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, keyToken)
}

// LoggedIn reports whether a token is stored.
func (s *Store) LoggedIn(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	return token != "", err
}

// User returns the stored user, or nil when logged out.
func (s *Store) User(ctx context.Context) (*catalog.User, error) {
	id, err := s.get(ctx, keyUserID)
	if err != nil || id == "" {
		return nil, err
	}
	email, err := s.get(ctx, keyUserEmail)
	if err != nil || email == "" {
		return nil, err
	}
	name, err := s.get(ctx, keyUserName)
	if err != nil {
		return nil, err
	}
	return &catalog.User{ID: id, Email: email, Name: name}, nil
}

// SaveSession replaces the stored session with auth.
func (s *Store) SaveSession(ctx context.Context, auth *catalog.AuthResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	values := []struct{ key, value string }{
		{keyToken, auth.Token},
		{keyUserID, auth.User.ID},
		{keyUserEmail, auth.User.Email},
		{keyUserName, auth.User.Name},
	}
	for _, kv := range values {
		if kv.value == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO session (key, value) VALUES (?, ?)`, kv.key, kv.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", kv.key, err)
		}
	}

	return tx.Commit()
}

// Clear logs out.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}
