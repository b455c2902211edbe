package models

import "time"

// Profile is the public slice of a user shown to other users.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Message is one message in a user's thread. Counterpart is the other
// party's public profile: the recipient for outgoing threads, the sender
// for incoming ones.
type Message struct {
	ID          int64      `json:"id"`
	Counterpart Profile    `json:"counterpart"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at"`
}
