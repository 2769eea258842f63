package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/settleapp/settle/internal/models"
)

// Balance is a user's derived net position across all groups. At most one of
// the two fields is non-zero: the fold computes a single signed net and
// derives both from its sign.
type Balance struct {
	// OwedToMe is how much others owe this user.
	OwedToMe float64

	// IOwe is how much this user owes others.
	IOwe float64
}

// Summary holds a group's independent expense and settlement totals.
// SettledAmount is not capped by TotalExpenses; overpayment is representable
// and any display percentage is the presentation layer's problem.
type Summary struct {
	// TotalExpenses is the sum of all expense amounts in the group.
	TotalExpenses float64

	// SettledAmount is the sum of all payment amounts in the group.
	SettledAmount float64
}

// CategoryTotal is a per-category expense total.
type CategoryTotal struct {
	Category    string
	TotalAmount float64
}

// OverallBalance folds a user's expense splits and payments into their net
// balance:
//
//	paidByMe = Σ split.Paid (member == user) + Σ payment.Amount (from == user)
//	myShare  = Σ split.Owes (member == user)
//	paidToMe = Σ payment.Amount (to == user)
//	net      = paidByMe − myShare − paidToMe
//
// A positive net is money owed to the user, a negative net is money the user
// owes. Empty inputs fold to a zero balance, never an error. The fold is
// commutative: record order does not affect the result.
func OverallBalance(user string, splits []models.Split, payments []models.Payment) Balance {
	user = models.NormalizeEmail(user)

	paid := decimal.Zero
	share := decimal.Zero
	received := decimal.Zero

	for _, s := range splits {
		if models.NormalizeEmail(s.Member) != user {
			continue
		}
		paid = paid.Add(decimal.NewFromFloat(s.Paid))
		share = share.Add(decimal.NewFromFloat(s.Owes))
	}
	for _, p := range payments {
		if models.NormalizeEmail(p.From) == user {
			paid = paid.Add(decimal.NewFromFloat(p.Amount))
		}
		if models.NormalizeEmail(p.To) == user {
			received = received.Add(decimal.NewFromFloat(p.Amount))
		}
	}

	net := paid.Sub(share).Sub(received)
	if net.IsPositive() {
		return Balance{OwedToMe: net.InexactFloat64()}
	}
	return Balance{IOwe: net.Neg().InexactFloat64()}
}

// GroupSummary sums expense and payment amounts for a group.
func GroupSummary(expenses []models.Expense, payments []models.Payment) Summary {
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(decimal.NewFromFloat(e.Amount))
	}
	settled := decimal.Zero
	for _, p := range payments {
		settled = settled.Add(decimal.NewFromFloat(p.Amount))
	}
	return Summary{
		TotalExpenses: totalExpenses.InexactFloat64(),
		SettledAmount: settled.InexactFloat64(),
	}
}

// CategoryBreakdown groups expenses by category and sums their amounts.
// Categories appear in first-seen order.
func CategoryBreakdown(expenses []models.Expense) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] = totals[e.Category].Add(decimal.NewFromFloat(e.Amount))
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, CategoryTotal{
			Category:    category,
			TotalAmount: totals[category].InexactFloat64(),
		})
	}
	return breakdown
}
