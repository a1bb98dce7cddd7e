package models

import "time"

// AuthToken maps a user to their single live bearer token. A user holds at
// most one token at a time; it is reused across logins until logout.
type AuthToken struct {
	UserID    string
	Token     string
	CreatedAt time.Time
}
