// Package models defines the records the server persists.
package models

import "time"

// User is an account. Token is the sole credential and is never returned
// to clients except once, right after the account is created.
type User struct {
	ID        int64
	UserName  string
	Token     string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
