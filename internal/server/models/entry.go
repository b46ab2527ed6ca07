package models

import "time"

// Entry is one user's habit check-in for one civil date (YYYY-MM-DD,
// Europe/Berlin). At most one exists per (Date, UserName).
type Entry struct {
	ID         int64
	Date       string
	UserName   string
	Journal    bool
	Meditation bool
	Movement   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
