package model

import "time"

// User represents a registered account. Accounts are immutable after
// registration: there is no edit or delete path.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
