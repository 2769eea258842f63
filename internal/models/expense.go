package models

// Expense categories. The set is fixed; unknown categories are rejected
// and an absent category falls back to the configured default.
const (
	CategoryFoodAndDrinks  = "Food & Drinks"
	CategoryTransportation = "Transportation"
	CategoryAccommodation  = "Accommodation"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryUtilities      = "Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryOther          = "Other"
)

// Categories lists every valid expense category.
var Categories = []string{
	CategoryFoodAndDrinks,
	CategoryTransportation,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryOther,
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Defaults holds construction-time default values for new entities.
// They are supplied explicitly from configuration rather than baked into
// any schema.
type Defaults struct {
	// Category is used when an expense is submitted without one.
	Category string

	// AvatarURL is the profile picture for new users.
	AvatarURL string
}

// Split is a per-member record within an expense stating how much that
// member paid toward the total and how much of it they owe.
type Split struct {
	// Member is the member's email.
	Member string

	// Paid is the amount this member put in (>= 0).
	Paid float64

	// Owes is this member's share of the total (>= 0).
	Owes float64
}

// Expense represents a shared expense within a group, created once as an
// indivisible unit together with its splits.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is the human-readable name for the expense.
	Title string

	// Amount is the total expense amount (> 0).
	Amount float64

	// Category is one of the fixed categories.
	Category string

	// Date is the Unix timestamp of when the expense happened.
	Date int64

	// Splits holds one entry per participating member, in submission order.
	// The sums of Paid and Owes each equal Amount within 0.01.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
