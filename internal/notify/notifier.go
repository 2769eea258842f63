// Package notify defines the event-emission contract the ledger core calls
// after successful mutations, plus its default implementations.
//
// Delivery is fire-and-forget: the services log notifier failures and move
// on, so a flaky channel never affects ledger correctness. Each mutation
// hands the notifier an explicit list of interested member emails; how those
// members are reached (push, poll, email) is the implementation's business.
package notify

import (
	"context"
	"log/slog"
)

// Event names emitted by the services.
const (
	EventNewGroup   = "new_group"
	EventNewExpense = "new_expense"
	EventNewPayment = "new_payment"
)

// Notifier receives an event for a list of member emails.
type Notifier interface {
	Notify(ctx context.Context, members []string, event string, payload any) error
}

// LogNotifier writes events to the structured log. It stands in for a push
// channel in development and keeps the event stream observable in production.
type LogNotifier struct{}

// Notify logs the event and its recipients.
func (LogNotifier) Notify(_ context.Context, members []string, event string, payload any) error {
	slog.Debug("event emitted", "event", event, "recipients", len(members), "payload", payload)
	return nil
}

// Multi fans an event out to several notifiers, returning the first error
// after attempting all of them.
type Multi []Notifier

// Notify delivers the event through every wrapped notifier.
func (m Multi) Notify(ctx context.Context, members []string, event string, payload any) error {
	var firstErr error
	for _, n := range m {
		if err := n.Notify(ctx, members, event, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
