package service

import (
	"context"
	"log/slog"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/ledger"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/storage"
)

// recentExpensesLimit caps the dashboard's recent-expenses list.
const recentExpensesLimit = 5

// DashboardService answers the read-only aggregate queries. It never mutates
// state: it fetches the relevant records and hands them to the ledger folds,
// so results are a best-effort snapshot with respect to in-flight writes.
type DashboardService struct {
	store storage.Store
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store}
}

// OverallBalance computes the actor's net balance across all groups.
// A user with no records gets a zero balance, never an error.
func (s *DashboardService) OverallBalance(ctx context.Context, actor *models.User) (ledger.Balance, error) {
	splits, err := s.store.ListSplitsByMember(ctx, actor.Email)
	if err != nil {
		slog.Error("OverallBalance failed to load splits", "user_id", actor.ID, "error", err)
		return ledger.Balance{}, apperr.Dependency("failed to load splits", err)
	}

	payments, err := s.store.ListPaymentsByUser(ctx, actor.Email)
	if err != nil {
		slog.Error("OverallBalance failed to load payments", "user_id", actor.ID, "error", err)
		return ledger.Balance{}, apperr.Dependency("failed to load payments", err)
	}

	return ledger.OverallBalance(actor.Email, splits, derefPayments(payments)), nil
}

// GroupSummary computes a group's expense and settlement totals.
// The actor must be a member.
func (s *DashboardService) GroupSummary(ctx context.Context, actor *models.User, groupID string) (ledger.Summary, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return ledger.Summary{}, apperr.NotFoundf("group not found")
	}
	if err != nil {
		return ledger.Summary{}, apperr.Dependency("failed to get group", err)
	}
	if !group.HasMember(actor.Email) {
		return ledger.Summary{}, apperr.Forbiddenf("you are not a member of this group")
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return ledger.Summary{}, apperr.Dependency("failed to list expenses", err)
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		return ledger.Summary{}, apperr.Dependency("failed to list payments", err)
	}

	return ledger.GroupSummary(deref(expenses), derefPayments(payments)), nil
}

// RecentExpenses retrieves the newest expenses across the actor's groups.
func (s *DashboardService) RecentExpenses(ctx context.Context, actor *models.User) ([]*models.Expense, error) {
	groupIDs, err := s.actorGroupIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListRecentExpenses(ctx, groupIDs, recentExpensesLimit)
	if err != nil {
		slog.Error("RecentExpenses failed", "user_id", actor.ID, "error", err)
		return nil, apperr.Dependency("failed to list recent expenses", err)
	}
	return expenses, nil
}

// ExpenseCount counts all expenses across the actor's groups.
func (s *DashboardService) ExpenseCount(ctx context.Context, actor *models.User) (int64, error) {
	groupIDs, err := s.actorGroupIDs(ctx, actor)
	if err != nil {
		return 0, err
	}

	count, err := s.store.CountExpenses(ctx, groupIDs)
	if err != nil {
		slog.Error("ExpenseCount failed", "user_id", actor.ID, "error", err)
		return 0, apperr.Dependency("failed to count expenses", err)
	}
	return count, nil
}

func (s *DashboardService) actorGroupIDs(ctx context.Context, actor *models.User) ([]string, error) {
	groups, err := s.store.ListGroupsByMember(ctx, actor.Email)
	if err != nil {
		return nil, apperr.Dependency("failed to list groups", err)
	}
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids, nil
}

func derefPayments(payments []*models.Payment) []models.Payment {
	out := make([]models.Payment, len(payments))
	for i, p := range payments {
		out[i] = *p
	}
	return out
}
