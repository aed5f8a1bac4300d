package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

// SQLiteUserRepository implements UserRepository on the shared database.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite-backed user repository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Add inserts or reactivates a user. Returns true if the user was newly
// added or reactivated, false if already active.
func (r *SQLiteUserRepository) Add(ctx context.Context, userID int64) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_active FROM users WHERE user_id = ?`, userID,
	).Scan(&active)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO users (user_id, is_active) VALUES (?, 1)`, userID)
		if err != nil {
			return false, fmt.Errorf("insert user: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("query user: %w", err)
	case active:
		return false, nil
	default:
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET is_active = 1 WHERE user_id = ?`, userID)
		if err != nil {
			return false, fmt.Errorf("reactivate user: %w", err)
		}
		return true, nil
	}
}

// Remove deactivates a user. Returns true if the user was active.
func (r *SQLiteUserRepository) Remove(ctx context.Context, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = 0 WHERE user_id = ? AND is_active = 1`, userID)
	if err != nil {
		return false, fmt.Errorf("deactivate user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Get retrieves a user by ID.
func (r *SQLiteUserRepository) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, is_active, created_at FROM users WHERE user_id = ?`, userID,
	).Scan(&user.UserID, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// List returns all users, newest first.
func (r *SQLiteUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, is_active, created_at FROM users ORDER BY created_at DESC, user_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.UserID, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// IsAllowed reports whether the user exists and is active.
func (r *SQLiteUserRepository) IsAllowed(ctx context.Context, userID int64) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_active FROM users WHERE user_id = ?`, userID,
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user: %w", err)
	}
	return active, nil
}
