package domain

import "time"

// Person is an employee directory entry. Owners are referenced by ID; the
// display name is only looked up for exports.
type Person struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}
