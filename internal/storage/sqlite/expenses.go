package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/settleapp/settle/internal/models"
)

// CreateExpense persists a new expense together with its splits in a single
// transaction, so a partially written expense can never be observed.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, title, amount, category, date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.Title, expense.Amount, expense.Category, expense.Date, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, position, member, paid, owes) VALUES (?, ?, ?, ?, ?)",
			expense.ID, i, split.Member, split.Paid, split.Owes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup retrieves all expenses in a group, newest date first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, title, amount, category, date, created_at
		 FROM expenses WHERE group_id = ?
		 ORDER BY date DESC, created_at DESC`,
		groupID,
	)
}

// ListRecentExpenses retrieves the most recent expenses across the given
// groups, newest date first, capped at limit.
func (s *SQLiteStore) ListRecentExpenses(ctx context.Context, groupIDs []string, limit int) ([]*models.Expense, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, group_id, title, amount, category, date, created_at
		 FROM expenses WHERE group_id IN (` + placeholders(len(groupIDs)) + `)
		 ORDER BY date DESC, created_at DESC
		 LIMIT ?`

	args := append(stringArgs(groupIDs), limit)
	return s.listExpenses(ctx, query, args...)
}

// CountExpenses counts expenses across the given groups.
func (s *SQLiteStore) CountExpenses(ctx context.Context, groupIDs []string) (int64, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}

	query := "SELECT COUNT(*) FROM expenses WHERE group_id IN (" + placeholders(len(groupIDs)) + ")"

	var count int64
	if err := s.db.QueryRowContext(ctx, query, stringArgs(groupIDs)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// ListSplitsByMember retrieves every split across all expenses for the given
// member email.
func (s *SQLiteStore) ListSplitsByMember(ctx context.Context, email string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member, paid, owes FROM expense_splits WHERE member = ?",
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits by member: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.Member, &split.Paid, &split.Owes); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(
			&expense.ID, &expense.GroupID, &expense.Title, &expense.Amount,
			&expense.Category, &expense.Date, &expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.expenseSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}

	return expenses, nil
}

func (s *SQLiteStore) expenseSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member, paid, owes FROM expense_splits WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.Member, &split.Paid, &split.Owes); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}
