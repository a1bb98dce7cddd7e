// Package models holds the persistent data structures of the backend.
package models

import "time"

// User is a registered account. Email is always stored lowercase and is
// unique across the users table. PasswordHash is a bcrypt hash; the
// plaintext password is never persisted.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
