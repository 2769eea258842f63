package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, avatar, notifications, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Avatar,
		boolToInt(user.Notifications),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
// Returns (nil, nil) when the user does not exist.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by their ID.
// Returns (nil, nil) when the user does not exist.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, name, password_hash, avatar, notifications, created_at, updated_at
		FROM users
		WHERE %s = ?
	`, column)

	user := &models.User{}
	var notifications int
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Avatar,
		&notifications,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	user.Notifications = notifications != 0
	return user, nil
}

// UpdateUser persists profile changes (name, avatar, notifications, password
// hash) for an existing user. Email and ID never change.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()

	query := `
		UPDATE users
		SET name = ?, avatar = ?, notifications = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		user.Name,
		user.Avatar,
		boolToInt(user.Notifications),
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListUsersByEmails retrieves the users matching the given emails.
// Emails without an account are omitted from the result.
func (s *SQLiteStore) ListUsersByEmails(ctx context.Context, emails []string) ([]*models.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, email, name, password_hash, avatar, notifications, created_at, updated_at
		FROM users
		WHERE email IN (` + placeholders(len(emails)) + `)`

	rows, err := s.db.QueryContext(ctx, query, stringArgs(emails)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by emails: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var notifications int
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PasswordHash,
			&user.Avatar,
			&notifications,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Notifications = notifications != 0
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
