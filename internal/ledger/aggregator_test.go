package ledger

import (
	"math"
	"math/rand"
	"testing"

	"github.com/settleapp/settle/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverallBalance(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		splits   []models.Split
		payments []models.Payment
		want     Balance
	}{
		{
			name: "debtor after single expense",
			user: "bob@example.com",
			splits: []models.Split{
				{Member: "alice@example.com", Paid: 100, Owes: 50},
				{Member: "bob@example.com", Paid: 0, Owes: 50},
			},
			want: Balance{IOwe: 50},
		},
		{
			name: "creditor after single expense",
			user: "alice@example.com",
			splits: []models.Split{
				{Member: "alice@example.com", Paid: 100, Owes: 50},
				{Member: "bob@example.com", Paid: 0, Owes: 50},
			},
			want: Balance{OwedToMe: 50},
		},
		{
			name: "settled after payment",
			user: "bob@example.com",
			splits: []models.Split{
				{Member: "alice@example.com", Paid: 100, Owes: 50},
				{Member: "bob@example.com", Paid: 0, Owes: 50},
			},
			payments: []models.Payment{
				{From: "bob@example.com", To: "alice@example.com", Amount: 50},
			},
			want: Balance{},
		},
		{
			name: "creditor settled after receiving payment",
			user: "alice@example.com",
			splits: []models.Split{
				{Member: "alice@example.com", Paid: 100, Owes: 50},
				{Member: "bob@example.com", Paid: 0, Owes: 50},
			},
			payments: []models.Payment{
				{From: "bob@example.com", To: "alice@example.com", Amount: 50},
			},
			want: Balance{},
		},
		{
			name: "no records folds to zero",
			user: "carol@example.com",
			want: Balance{},
		},
		{
			name: "other users' records ignored",
			user: "carol@example.com",
			splits: []models.Split{
				{Member: "alice@example.com", Paid: 100, Owes: 100},
			},
			payments: []models.Payment{
				{From: "bob@example.com", To: "alice@example.com", Amount: 10},
			},
			want: Balance{},
		},
		{
			name: "overpayment flips the sign",
			user: "bob@example.com",
			splits: []models.Split{
				{Member: "alice@example.com", Paid: 100, Owes: 50},
				{Member: "bob@example.com", Paid: 0, Owes: 50},
			},
			payments: []models.Payment{
				{From: "bob@example.com", To: "alice@example.com", Amount: 80},
			},
			want: Balance{OwedToMe: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverallBalance(tt.user, tt.splits, tt.payments)
			if !almostEqual(got.OwedToMe, tt.want.OwedToMe) || !almostEqual(got.IOwe, tt.want.IOwe) {
				t.Errorf("OverallBalance() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverallBalanceOrderInvariant(t *testing.T) {
	splits := []models.Split{
		{Member: "alice@example.com", Paid: 120, Owes: 40},
		{Member: "bob@example.com", Paid: 0, Owes: 40},
		{Member: "carol@example.com", Paid: 0, Owes: 40},
		{Member: "bob@example.com", Paid: 33.34, Owes: 33.33},
		{Member: "alice@example.com", Paid: 0, Owes: 33.33},
	}
	payments := []models.Payment{
		{From: "bob@example.com", To: "alice@example.com", Amount: 20},
		{From: "carol@example.com", To: "alice@example.com", Amount: 40},
		{From: "alice@example.com", To: "bob@example.com", Amount: 5},
	}

	want := OverallBalance("bob@example.com", splits, payments)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(splits), func(a, b int) { splits[a], splits[b] = splits[b], splits[a] })
		rng.Shuffle(len(payments), func(a, b int) { payments[a], payments[b] = payments[b], payments[a] })

		got := OverallBalance("bob@example.com", splits, payments)
		if !almostEqual(got.OwedToMe, want.OwedToMe) || !almostEqual(got.IOwe, want.IOwe) {
			t.Fatalf("shuffle %d: OverallBalance() = %+v, want %+v", i, got, want)
		}
	}
}

func TestOverallBalanceSignExclusive(t *testing.T) {
	// Whatever the inputs, at most one of OwedToMe/IOwe is non-zero and
	// neither is ever negative.
	rng := rand.New(rand.NewSource(7))
	users := []string{"a@x.com", "b@x.com", "c@x.com"}

	for i := 0; i < 100; i++ {
		var splits []models.Split
		for j := 0; j < rng.Intn(8); j++ {
			splits = append(splits, models.Split{
				Member: users[rng.Intn(len(users))],
				Paid:   float64(rng.Intn(10000)) / 100,
				Owes:   float64(rng.Intn(10000)) / 100,
			})
		}
		var payments []models.Payment
		for j := 0; j < rng.Intn(5); j++ {
			payments = append(payments, models.Payment{
				From:   users[rng.Intn(len(users))],
				To:     users[rng.Intn(len(users))],
				Amount: float64(rng.Intn(5000)) / 100,
			})
		}

		for _, u := range users {
			b := OverallBalance(u, splits, payments)
			if b.OwedToMe < 0 || b.IOwe < 0 {
				t.Fatalf("negative balance for %s: %+v", u, b)
			}
			if b.OwedToMe > 0 && b.IOwe > 0 {
				t.Fatalf("both sides non-zero for %s: %+v", u, b)
			}
		}
	}
}

func TestGroupSummary(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 120.50, Category: models.CategoryFoodAndDrinks},
		{Amount: 60, Category: models.CategoryTransportation},
		{Amount: 19.49, Category: models.CategoryFoodAndDrinks},
	}
	payments := []models.Payment{
		{Amount: 75},
		{Amount: 150},
	}

	got := GroupSummary(expenses, payments)
	if !almostEqual(got.TotalExpenses, 199.99) {
		t.Errorf("TotalExpenses = %v, want 199.99", got.TotalExpenses)
	}
	// Settled exceeds total: intentional, overpayment is representable.
	if !almostEqual(got.SettledAmount, 225) {
		t.Errorf("SettledAmount = %v, want 225", got.SettledAmount)
	}

	// Idempotent with no intervening writes.
	again := GroupSummary(expenses, payments)
	if got != again {
		t.Errorf("GroupSummary not idempotent: %+v vs %+v", got, again)
	}
}

func TestGroupSummaryEmpty(t *testing.T) {
	got := GroupSummary(nil, nil)
	if got.TotalExpenses != 0 || got.SettledAmount != 0 {
		t.Errorf("GroupSummary(nil, nil) = %+v, want zeros", got)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 40, Category: models.CategoryFoodAndDrinks},
		{Amount: 25, Category: models.CategoryTransportation},
		{Amount: 10.50, Category: models.CategoryFoodAndDrinks},
		{Amount: 99, Category: models.CategoryOther},
	}

	got := CategoryBreakdown(expenses)
	want := []CategoryTotal{
		{Category: models.CategoryFoodAndDrinks, TotalAmount: 50.50},
		{Category: models.CategoryTransportation, TotalAmount: 25},
		{Category: models.CategoryOther, TotalAmount: 99},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Category != want[i].Category || !almostEqual(got[i].TotalAmount, want[i].TotalAmount) {
			t.Errorf("breakdown[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Errorf("CategoryBreakdown(nil) = %v, want empty", got)
	}
}
