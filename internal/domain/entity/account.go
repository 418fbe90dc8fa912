package entity

import (
	"time"
)

// Account is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
//
// Email is the login key, Username the display/sharing key;
// both are globally unique.
type Account struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
