package service

import (
	"context"
	"testing"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/notify"
)

func expenseFixture(t *testing.T) (*ExpenseService, *GroupService, *recordingNotifier, *recordingMailer, *models.User, *models.User, *models.Group) {
	t.Helper()

	store := newTestStore(t)
	notifier := &recordingNotifier{}
	mailer := &recordingMailer{}
	groups := NewGroupService(store, notifier, mailer)
	expenses := NewExpenseService(store, notifier, mailer, testDefaults)

	alice := mustUser(t, store, "alice@example.com", "Alice")
	bob := mustUser(t, store, "bob@example.com", "Bob")
	group := mustGroup(t, groups, alice, "Flat 402", []string{"alice@example.com", "bob@example.com"})

	// Only count notifications from here on.
	notifier.events = nil
	mailer.sent = nil

	return expenses, groups, notifier, mailer, alice, bob, group
}

func validInput() AddExpenseInput {
	return AddExpenseInput{
		Title:  "Groceries",
		Amount: 100,
		Date:   1700000000,
		Splits: []models.Split{
			{Member: "alice@example.com", Paid: 100, Owes: 50},
			{Member: "bob@example.com", Paid: 0, Owes: 50},
		},
	}
}

func TestAddExpense(t *testing.T) {
	svc, _, notifier, mailer, alice, _, group := expenseFixture(t)
	ctx := context.Background()

	expense, err := svc.AddExpense(ctx, alice, group.ID, validInput())
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if expense.ID == "" {
		t.Error("expected generated expense ID")
	}
	if expense.Category != models.CategoryOther {
		t.Errorf("category = %q, want default %q", expense.Category, models.CategoryOther)
	}

	events := notifier.byEvent(notify.EventNewExpense)
	if len(events) != 1 || len(events[0].Members) != 2 {
		t.Errorf("events = %+v, want one new_expense event to both members", events)
	}

	// Bob owes and did not pay, so he gets the email; Alice paid.
	recipients := mailer.recipients()
	if len(recipients) != 1 || recipients[0] != "bob@example.com" {
		t.Errorf("mail recipients = %v, want [bob@example.com]", recipients)
	}
}

func TestAddExpenseRejections(t *testing.T) {
	svc, _, _, _, alice, _, group := expenseFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(*AddExpenseInput)
		wantKind apperr.Kind
	}{
		{
			name:     "missing title",
			mutate:   func(in *AddExpenseInput) { in.Title = "" },
			wantKind: apperr.KindValidation,
		},
		{
			name:     "missing date",
			mutate:   func(in *AddExpenseInput) { in.Date = 0 },
			wantKind: apperr.KindValidation,
		},
		{
			name:     "unknown category",
			mutate:   func(in *AddExpenseInput) { in.Category = "Gambling" },
			wantKind: apperr.KindValidation,
		},
		{
			name: "split sum mismatch",
			mutate: func(in *AddExpenseInput) {
				in.Splits = []models.Split{
					{Member: "alice@example.com", Paid: 100, Owes: 40},
					{Member: "bob@example.com", Paid: 0, Owes: 70},
				}
			},
			wantKind: apperr.KindValidation,
		},
		{
			name: "split member outside group",
			mutate: func(in *AddExpenseInput) {
				in.Splits = []models.Split{
					{Member: "alice@example.com", Paid: 100, Owes: 50},
					{Member: "carol@example.com", Paid: 0, Owes: 50},
				}
			},
			wantKind: apperr.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.AddExpense(ctx, alice, group.ID, in)
			if apperr.KindOf(err) != tt.wantKind {
				t.Errorf("kind = %v (%v), want %v", apperr.KindOf(err), err, tt.wantKind)
			}

			// Nothing may have been written.
			expenses, listErr := svc.ListExpenses(ctx, alice, group.ID)
			if listErr != nil {
				t.Fatalf("ListExpenses failed: %v", listErr)
			}
			if len(expenses) != 0 {
				t.Errorf("expected no persisted expenses, got %d", len(expenses))
			}
		})
	}
}

func TestAddExpenseNonMemberActor(t *testing.T) {
	svc, _, _, _, _, _, group := expenseFixture(t)
	mallory := &models.User{ID: "mallory-id", Email: "mallory@example.com", Name: "Mallory"}

	_, err := svc.AddExpense(context.Background(), mallory, group.ID, validInput())
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("kind = %v, want forbidden", apperr.KindOf(err))
	}
}

func TestAddExpenseGroupNotFound(t *testing.T) {
	svc, _, _, _, alice, _, _ := expenseFixture(t)

	_, err := svc.AddExpense(context.Background(), alice, "nonexistent", validInput())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestAddExpenseRespectsMailPreference(t *testing.T) {
	svc, _, _, mailer, alice, bob, group := expenseFixture(t)
	ctx := context.Background()

	bob.Notifications = false
	store := svc.store
	if err := store.UpdateUser(ctx, bob); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	if _, err := svc.AddExpense(ctx, alice, group.ID, validInput()); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if recipients := mailer.recipients(); len(recipients) != 0 {
		t.Errorf("mail recipients = %v, want none", recipients)
	}
}

func TestListExpensesAuthorization(t *testing.T) {
	svc, _, _, _, alice, _, group := expenseFixture(t)
	ctx := context.Background()

	if _, err := svc.AddExpense(ctx, alice, group.ID, validInput()); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	mallory := &models.User{ID: "mallory-id", Email: "mallory@example.com"}
	_, err := svc.ListExpenses(ctx, mallory, group.ID)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("kind = %v, want forbidden", apperr.KindOf(err))
	}
}

func TestCategoryBreakdown(t *testing.T) {
	svc, _, _, _, alice, _, group := expenseFixture(t)
	ctx := context.Background()

	in := validInput()
	in.Category = models.CategoryFoodAndDrinks
	if _, err := svc.AddExpense(ctx, alice, group.ID, in); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	second := AddExpenseInput{
		Title:    "Cab",
		Amount:   30,
		Category: models.CategoryTransportation,
		Date:     1700000100,
		Splits: []models.Split{
			{Member: "alice@example.com", Paid: 30, Owes: 30},
		},
	}
	if _, err := svc.AddExpense(ctx, alice, group.ID, second); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	breakdown, err := svc.CategoryBreakdown(ctx, alice, group.ID)
	if err != nil {
		t.Fatalf("CategoryBreakdown failed: %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("len = %d, want 2", len(breakdown))
	}

	totals := make(map[string]float64)
	for _, b := range breakdown {
		totals[b.Category] = b.TotalAmount
	}
	if totals[models.CategoryFoodAndDrinks] != 100 || totals[models.CategoryTransportation] != 30 {
		t.Errorf("totals = %v", totals)
	}
}
