// Package models contains data structures for the application's domain models.
package models

import "time"

// Account represents a registered identity in SocialHub.
// Usernames are unique (case-sensitive) and immutable once created.
// Passwords are stored and compared as opaque strings; see the design
// notes for why they are not hashed here.
type Account struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
