package models

import "time"

// User is the identity record for a messagely account. Username is the
// primary identifier and never changes once created. PasswordHash must not
// leave the auth/storage layers; lookups meant for callers carry it empty.
type User struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	JoinedAt     time.Time  `json:"join_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}
