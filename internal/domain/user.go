package domain

import "time"

// User is the domain model for accounts. Email replaces the username as the
// login identifier and is always stored lower-cased.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
