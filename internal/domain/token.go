package domain

import "time"

// AuthToken is the opaque bearer token bound to a single user. Each user has
// at most one token; issuing is get-or-create, so repeated logins return the
// same value until the row is removed.
type AuthToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}
