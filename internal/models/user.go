package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address, lowercased and trimmed.
	// It is the identity key referenced by groups, splits and payments.
	Email string

	// Name is the display name of the user.
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string

	// Avatar is a URL to the user's profile picture.
	Avatar string

	// Notifications controls whether the user receives email notifications.
	Notifications bool

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser creates a user with a generated ID and timestamps.
// The email is normalized and defaults come from the supplied Defaults.
func NewUser(email, name, passwordHash string, defaults Defaults) *User {
	now := time.Now().Unix()
	return &User{
		ID:            uuid.New().String(),
		Email:         NormalizeEmail(email),
		Name:          name,
		PasswordHash:  passwordHash,
		Avatar:        defaults.AvatarURL,
		Notifications: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NormalizeEmail lowercases and trims an email address so the same
// mailbox always maps to the same identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
