package service

import (
	"context"
	"log/slog"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/notify"
	"github.com/settleapp/settle/internal/storage"
)

// PaymentService records settling payments between group members.
type PaymentService struct {
	store    storage.Store
	notifier notify.Notifier

	// allowThirdParty lets any member record a payment between any two
	// members. When false the actor must be the payer or the payee.
	allowThirdParty bool
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store storage.Store, notifier notify.Notifier, allowThirdParty bool) *PaymentService {
	return &PaymentService{store: store, notifier: notifier, allowThirdParty: allowThirdParty}
}

// RecordPayment validates and persists a payment in the given group.
// Preconditions: amount > 0, from and to are distinct group members, and the
// actor is a member. Nothing is written on failure. On success every group
// member gets a new_payment event.
func (s *PaymentService) RecordPayment(ctx context.Context, actor *models.User, groupID, from, to string, amount float64) (*models.Payment, error) {
	if from == "" || to == "" || amount <= 0 {
		return nil, apperr.Validationf("from, to, and a positive amount are required")
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return nil, apperr.NotFoundf("group not found")
	}
	if err != nil {
		slog.Error("RecordPayment failed to load group", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to get group", err)
	}

	if !group.HasMember(actor.Email) {
		return nil, apperr.Forbiddenf("you are not authorized to perform this action in this group")
	}

	from = models.NormalizeEmail(from)
	to = models.NormalizeEmail(to)
	if from == to {
		return nil, apperr.Validationf("payer and payee must be different members")
	}
	if !group.HasMember(from) || !group.HasMember(to) {
		return nil, apperr.Forbiddenf("both payer and payee must be members of this group")
	}
	if !s.allowThirdParty && actor.Email != from && actor.Email != to {
		return nil, apperr.Forbiddenf("you may only record payments you are part of")
	}

	payment := &models.Payment{
		GroupID:   group.ID,
		From:      from,
		To:        to,
		Amount:    amount,
		CreatedBy: actor.ID,
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to record payment", err)
	}

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"group_id", group.ID,
		"from", from,
		"to", to,
		"amount", amount,
	)

	if err := s.notifier.Notify(ctx, group.Members, notify.EventNewPayment, payment); err != nil {
		slog.Warn("Payment event delivery failed", "payment_id", payment.ID, "error", err)
	}

	return payment, nil
}
