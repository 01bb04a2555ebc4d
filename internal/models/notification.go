package models

import "time"

// Notification is a server generated message for one user. Only IsRead
// changes after creation, and only from false to true.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// WeeklyTotals are the income and expense sums for one user over one week.
type WeeklyTotals struct {
	Income  Amount
	Expense Amount
}
