package user

import (
	"time"
)

// User represents the users table (or collection, for the document store).
// Email is the unique key; the record is never updated after creation.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
