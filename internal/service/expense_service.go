package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/ledger"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/notify"
	"github.com/settleapp/settle/internal/storage"
)

// ExpenseService creates and reads expenses.
type ExpenseService struct {
	store    storage.Store
	notifier notify.Notifier
	mailer   notify.Mailer
	defaults models.Defaults
}

// NewExpenseService creates a new ExpenseService. defaults supplies the
// category used when an expense is submitted without one.
func NewExpenseService(store storage.Store, notifier notify.Notifier, mailer notify.Mailer, defaults models.Defaults) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier, mailer: mailer, defaults: defaults}
}

// AddExpenseInput is a proposed expense before validation.
type AddExpenseInput struct {
	Title    string
	Amount   float64
	Category string
	Date     int64
	Splits   []models.Split
}

// AddExpense validates and persists an expense in the given group.
// Validation and authorization happen before any write; the expense and its
// splits are committed as one atomic unit. On success every group member
// gets a new_expense event and owing non-payers are emailed their share.
func (s *ExpenseService) AddExpense(ctx context.Context, actor *models.User, groupID string, in AddExpenseInput) (*models.Expense, error) {
	if in.Title == "" || in.Date == 0 || len(in.Splits) == 0 {
		return nil, apperr.Validationf("title, amount, date and splits are required")
	}

	category := in.Category
	if category == "" {
		category = s.defaults.Category
	}
	if !models.ValidCategory(category) {
		return nil, apperr.Validationf("unknown category %q", category)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return nil, apperr.NotFoundf("group not found")
	}
	if err != nil {
		slog.Error("AddExpense failed to load group", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to get group", err)
	}

	splits := make([]models.Split, len(in.Splits))
	for i, split := range in.Splits {
		splits[i] = models.Split{
			Member: models.NormalizeEmail(split.Member),
			Paid:   split.Paid,
			Owes:   split.Owes,
		}
	}

	if err := ledger.ValidateSplits(actor.Email, in.Amount, splits, group.Members); err != nil {
		if errors.Is(err, ledger.ErrNotAMember) {
			return nil, apperr.Forbiddenf("you are not a member of this group")
		}
		return nil, apperr.Validationf("%s", err.Error())
	}

	expense := &models.Expense{
		GroupID:  group.ID,
		Title:    in.Title,
		Amount:   in.Amount,
		Category: category,
		Date:     in.Date,
		Splits:   splits,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to create expense", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"amount", expense.Amount,
		"splits", len(expense.Splits),
	)

	if err := s.notifier.Notify(ctx, group.Members, notify.EventNewExpense, expense); err != nil {
		slog.Warn("Expense event delivery failed", "expense_id", expense.ID, "error", err)
	}
	s.emailParticipants(ctx, group, expense)

	return expense, nil
}

// ListExpenses retrieves a group's expenses, newest date first.
// The actor must be a member.
func (s *ExpenseService) ListExpenses(ctx context.Context, actor *models.User, groupID string) ([]*models.Expense, error) {
	if _, err := s.memberGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to list expenses", err)
	}
	return expenses, nil
}

// CategoryBreakdown groups a group's expenses by category and sums amounts,
// in first-seen category order.
func (s *ExpenseService) CategoryBreakdown(ctx context.Context, actor *models.User, groupID string) ([]ledger.CategoryTotal, error) {
	if _, err := s.memberGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("CategoryBreakdown failed", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to list expenses", err)
	}

	return ledger.CategoryBreakdown(deref(expenses)), nil
}

func (s *ExpenseService) memberGroup(ctx context.Context, actor *models.User, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return nil, apperr.NotFoundf("group not found")
	}
	if err != nil {
		return nil, apperr.Dependency("failed to get group", err)
	}
	if !group.HasMember(actor.Email) {
		return nil, apperr.Forbiddenf("you are not a member of this group")
	}
	return group, nil
}

// emailParticipants notifies members who owe a share and did not pay,
// honoring notification preferences. Failures are logged and swallowed.
func (s *ExpenseService) emailParticipants(ctx context.Context, group *models.Group, expense *models.Expense) {
	var payer string
	owed := make(map[string]float64)
	for _, split := range expense.Splits {
		if split.Paid > 0 && payer == "" {
			payer = split.Member
		}
		if split.Owes > 0 {
			owed[split.Member] = split.Owes
		}
	}

	var recipients []string
	for member, amount := range owed {
		if member != payer && amount > 0 {
			recipients = append(recipients, member)
		}
	}
	if len(recipients) == 0 {
		return
	}

	users, err := s.store.ListUsersByEmails(ctx, recipients)
	if err != nil {
		slog.Error("Failed to load participants for email notification", "expense_id", expense.ID, "error", err)
		return
	}

	subject := fmt.Sprintf("New expense in %s", group.Name)
	for _, user := range users {
		if !user.Notifications {
			continue
		}
		body := fmt.Sprintf("%s added a new expense %q for $%.2f. Your share is $%.2f.",
			payer, expense.Title, expense.Amount, owed[user.Email])
		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			slog.Warn("Failed to send expense email", "to", user.Email, "error", err)
		}
	}
}

func deref(expenses []*models.Expense) []models.Expense {
	out := make([]models.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = *e
	}
	return out
}
