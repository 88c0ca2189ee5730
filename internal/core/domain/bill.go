package domain

import "time"

// Bill is a recurring automatic payment charged against an account.
// LastPayTime holds the next date the bill is due.
type Bill struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount"`
	LastPayTime time.Time `json:"lastPayTime"`
	IsActive    bool      `json:"isActive"`
	AccountID   int64     `json:"accountId"`
}

// IsDueOn reports whether the bill is active and falls on the UTC calendar day of day.
func (b *Bill) IsDueOn(day time.Time) bool {
	start := StartOfDay(day)
	return b.IsActive && !b.LastPayTime.Before(start) && b.LastPayTime.Before(start.AddDate(0, 0, 1))
}

// Advance moves the bill to the same day next month.
func (b *Bill) Advance() {
	b.LastPayTime = b.LastPayTime.AddDate(0, 1, 0)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
