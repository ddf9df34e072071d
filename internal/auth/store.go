package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// MinPasswordLength is enforced when creating users.
const MinPasswordLength = 8

// Store persists admin users.
type Store struct {
	db   *db.DB
	cost int
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, cost: bcrypt.DefaultCost}
}

// CreateUser hashes the password and inserts a new admin user.
func (s *Store) CreateUser(ctx context.Context, email, name, password string) (*User, error) {
	email = normalizeEmail(email)
	if len(password) < MinPasswordLength {
		return nil, validate.Errors{"password": fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if _, err := s.GetByEmail(ctx, email); err == nil {
		return nil, validate.Errors{"email": "is already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admin_users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting admin user: %w", err)
	}
	return u, nil
}

// GetByEmail looks up a user by e-mail address.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at, last_login FROM admin_users WHERE email = ?`,
		normalizeEmail(email),
	)
	var (
		u         User
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading admin user: %w", err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

// Authenticate checks the password and records the login time.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == db.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `UPDATE admin_users SET last_login = ? WHERE id = ?`, now, u.ID); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}
	u.LastLogin = &now
	return u, nil
}

// Count returns the number of admin users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting admin users: %w", err)
	}
	return n, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
