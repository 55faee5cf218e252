package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// LocalAuthenticator is an Authenticator backed by a local SQLite table
// with bcrypt password hashes. It stands in for the managed identity
// provider the browser client delegates to.
type LocalAuthenticator struct {
	db *sql.DB
}

// NewLocalAuthenticator creates the authenticator and ensures its schema.
func NewLocalAuthenticator(db *sql.DB) (*LocalAuthenticator, error) {
	a := &LocalAuthenticator{db: db}
	if err := a.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize auth schema: %w", err)
	}
	return a, nil
}

func (a *LocalAuthenticator) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		uid TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`
	_, err := a.db.Exec(schema)
	return err
}

// CreateUser registers a new identity. The email must be unused and the
// password must meet the minimum length.
func (a *LocalAuthenticator) CreateUser(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !model.ValidEmail(email) {
		return Identity{}, common.NewUserError("Please enter a valid email address", common.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return Identity{}, common.NewUserError("Password must be at least 6 characters", common.ErrWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.NewString()
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO users (uid, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, uid, email, string(hash), time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Identity{}, common.NewUserError("This email is already registered", common.ErrEmailInUse)
		}
		return Identity{}, fmt.Errorf("failed to create user: %w", err)
	}

	return Identity{UID: uid, Email: email}, nil
}

// SignIn verifies the credentials against the stored hash.
func (a *LocalAuthenticator) SignIn(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var identity Identity
	var hash string
	err := a.db.QueryRowContext(ctx, `
		SELECT uid, email, password_hash, display_name
		FROM users WHERE email = ?
	`, email).Scan(&identity.UID, &identity.Email, &hash, &identity.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return Identity{}, common.NewUserError("Login failed. Please check your credentials.", common.ErrInvalidCredentials)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Identity{}, common.NewUserError("Login failed. Please check your credentials.", common.ErrInvalidCredentials)
	}

	return identity, nil
}

// UpdateDisplayName sets the identity's display name.
func (a *LocalAuthenticator) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	result, err := a.db.ExecContext(ctx, `
		UPDATE users SET display_name = ? WHERE uid = ?
	`, displayName, uid)
	if err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %s: %w", uid, common.ErrNotFound)
	}
	return nil
}
