package api

import "time"

type LoginResult struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type User struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Account is an issued login. The token is only ever shown once.
type Account struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type Entry struct {
	Date       string    `json:"date"`
	Username   string    `json:"username"`
	Journal    bool      `json:"journal"`
	Meditation bool      `json:"meditation"`
	Movement   bool      `json:"movement"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type EntryInput struct {
	Date       string `json:"date"`
	Username   string `json:"username"`
	Token      string `json:"token"`
	Journal    bool   `json:"journal"`
	Meditation bool   `json:"meditation"`
	Movement   bool   `json:"movement"`
}
