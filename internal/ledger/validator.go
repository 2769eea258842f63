// Package ledger implements the computation core of Settle: split-set
// validation and pure balance folds over committed expenses and payments.
//
// Nothing in this package touches storage or the network. Callers fetch the
// records they care about and pass them in as plain slices, which keeps every
// rule independently unit-testable. Money sums use decimal arithmetic so
// repeated folds do not accumulate float drift; inputs and outputs stay
// float64 at the boundary.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/settleapp/settle/internal/models"
)

// Tolerance is the maximum absolute difference allowed between the expense
// amount and the sum of its splits' paid (or owes) values.
const Tolerance = 0.01

var (
	// ErrMissingFields reports an empty split set or a non-positive amount.
	ErrMissingFields = errors.New("amount and at least one split are required")

	// ErrNegativeSplit reports a split with a negative paid or owes value.
	ErrNegativeSplit = errors.New("split values must not be negative")

	// ErrSplitSumMismatch reports splits that do not add up to the amount.
	ErrSplitSumMismatch = errors.New("the sum of splits must equal the total expense amount")

	// ErrNoPayer reports a split set in which nobody paid anything.
	ErrNoPayer = errors.New("expense must have a payer")

	// ErrNotAMember reports an actor or split member outside the group.
	ErrNotAMember = errors.New("not a member of this group")
)

var tolerance = decimal.NewFromFloat(Tolerance)

// ValidateSplits checks a proposed expense's split set against the group's
// member list. Checks run in order and the first failure wins:
//
//  1. amount > 0 and splits non-empty (ErrMissingFields),
//     no negative paid/owes (ErrNegativeSplit)
//  2. Σpaid and Σowes each within Tolerance of amount (ErrSplitSumMismatch)
//  3. at least one split has paid > 0 (ErrNoPayer)
//  4. actor and every split member belong to the group (ErrNotAMember)
//
// A split set covering only a subset of the group is accepted: absent members
// implicitly paid and owe nothing.
func ValidateSplits(actor string, amount float64, splits []models.Split, members []string) error {
	if amount <= 0 || len(splits) == 0 {
		return ErrMissingFields
	}

	total := decimal.NewFromFloat(amount)
	sumPaid := decimal.Zero
	sumOwes := decimal.Zero
	hasPayer := false
	for _, s := range splits {
		if s.Paid < 0 || s.Owes < 0 {
			return ErrNegativeSplit
		}
		sumPaid = sumPaid.Add(decimal.NewFromFloat(s.Paid))
		sumOwes = sumOwes.Add(decimal.NewFromFloat(s.Owes))
		if s.Paid > 0 {
			hasPayer = true
		}
	}

	if sumPaid.Sub(total).Abs().GreaterThan(tolerance) ||
		sumOwes.Sub(total).Abs().GreaterThan(tolerance) {
		return ErrSplitSumMismatch
	}

	if !hasPayer {
		return ErrNoPayer
	}

	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}
	if !memberSet[models.NormalizeEmail(actor)] {
		return ErrNotAMember
	}
	for _, s := range splits {
		if !memberSet[models.NormalizeEmail(s.Member)] {
			return ErrNotAMember
		}
	}

	return nil
}
