package models

import "time"

// User is the identity exposed by the auth service
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the durable login record for a signed-in user
type Session struct {
	ID        string    `json:"id" badgerhold:"key"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthCredentials is one entry in the demo credential store
type AuthCredentials struct {
	Email    string `json:"email" toml:"email"`
	Password string `json:"password" toml:"password"`
}
