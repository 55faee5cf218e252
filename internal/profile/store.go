package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// Store abstracts the remote profile document store.
type Store interface {
	// Get returns the profile for uid, or common.ErrNotFound.
	Get(ctx context.Context, uid string) (model.UserProfile, error)
	// Put creates or replaces the profile document.
	Put(ctx context.Context, p model.UserProfile) error
}

// SQLiteStore is a Store backed by a local SQLite table, standing in for
// the managed document store of the original deployment.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the store and ensures its schema.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize profile schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		uid TEXT PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		last_updated DATETIME
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the profile document for uid.
func (s *SQLiteStore) Get(ctx context.Context, uid string) (model.UserProfile, error) {
	var p model.UserProfile
	var createdAt, lastUpdated sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT uid, first_name, last_name, email, currency, created_at, last_updated
		FROM profiles WHERE uid = ?
	`, uid).Scan(&p.UID, &p.FirstName, &p.LastName, &p.Email, &p.Currency, &createdAt, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserProfile{}, fmt.Errorf("profile %s: %w", uid, common.ErrNotFound)
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if lastUpdated.Valid {
		p.LastUpdated = lastUpdated.Time
	}
	return p, nil
}

// Put creates or replaces the profile document.
func (s *SQLiteStore) Put(ctx context.Context, p model.UserProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.LastUpdated = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (uid, first_name, last_name, email, currency, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			currency = excluded.currency,
			last_updated = excluded.last_updated
	`, p.UID, p.FirstName, p.LastName, p.Email, p.Currency, p.CreatedAt, p.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to put profile: %w", err)
	}
	return nil
}
