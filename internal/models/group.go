package models

// Group represents a named collection of member identities sharing expenses.
// Membership is fixed at creation; the creator's email is always a member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 402").
	Name string

	// Description is an optional free-form description.
	Description string

	// Members is the list of member emails. Semantically a set, but
	// insertion order is preserved for display.
	Members []string

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether email is a member of the group.
// The email is normalized before comparison.
func (g *Group) HasMember(email string) bool {
	email = NormalizeEmail(email)
	for _, m := range g.Members {
		if m == email {
			return true
		}
	}
	return false
}
