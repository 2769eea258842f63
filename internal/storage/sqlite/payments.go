package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/settleapp/settle/internal/models"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, from_email, to_email, amount, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, payment.From, payment.To,
		payment.Amount, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPaymentsByGroup retrieves all payments in a group, newest first.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	return s.listPayments(ctx,
		`SELECT id, group_id, from_email, to_email, amount, created_by, created_at
		 FROM payments WHERE group_id = ?
		 ORDER BY created_at DESC`,
		groupID,
	)
}

// ListPaymentsByUser retrieves every payment where the email is the payer or
// the payee.
func (s *SQLiteStore) ListPaymentsByUser(ctx context.Context, email string) ([]*models.Payment, error) {
	return s.listPayments(ctx,
		`SELECT id, group_id, from_email, to_email, amount, created_by, created_at
		 FROM payments WHERE from_email = ? OR to_email = ?`,
		email, email,
	)
}

func (s *SQLiteStore) listPayments(ctx context.Context, query string, args ...any) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(
			&payment.ID, &payment.GroupID, &payment.From, &payment.To,
			&payment.Amount, &payment.CreatedBy, &payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
