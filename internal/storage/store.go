// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/settleapp/settle/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence contract the services depend on. The core
// only ever creates and reads records; expenses and payments are write-once.
// Swapping the backend (SQLite, Postgres, a document store) must not touch
// the service layer.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns (nil, nil) when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// ListUsersByEmails returns the users that exist; missing emails are
	// silently omitted.
	ListUsersByEmails(ctx context.Context, emails []string) ([]*models.User, error)

	// Groups.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, email string) ([]*models.Group, error)

	// Expenses. Splits are stored and returned in submission order.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	ListRecentExpenses(ctx context.Context, groupIDs []string, limit int) ([]*models.Expense, error)
	CountExpenses(ctx context.Context, groupIDs []string) (int64, error)
	// ListSplitsByMember returns every split across all expenses where the
	// member matches, for the overall balance fold.
	ListSplitsByMember(ctx context.Context, email string) ([]models.Split, error)

	// Payments.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)
	// ListPaymentsByUser returns payments where the user is payer or payee.
	ListPaymentsByUser(ctx context.Context, email string) ([]*models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
