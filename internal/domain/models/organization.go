package models

import "time"

// Organization mirrors the identity provider's organization. OrgID is
// the provider's external identifier; ID is the local serial key the
// rest of the schema references.
type Organization struct {
	ID              int64
	OrgID           string
	Name            string
	CreatedByUserID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserOrganization links a user to an organization with a role.
// Duplicate links are ignored on insert (unique on user_id+org_id).
type UserOrganization struct {
	ID       int64
	UserID   int64
	OrgID    int64
	Role     string
	JoinedAt time.Time
}
