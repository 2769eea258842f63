package models

// Payment represents a settling transfer between two members of a group.
// Immutable after creation.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// From is the email of the member who paid (debtor settling up).
	From string

	// To is the email of the member who received the payment.
	To string

	// Amount is the payment amount (> 0).
	Amount float64

	// CreatedBy is the user ID of the member who recorded the payment.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
