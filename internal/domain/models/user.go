package models

import "time"

// User is an account row keyed by the identity provider's subject.
// The Email column holds the provider identity string used for
// get-or-create on the first trigger action.
type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
