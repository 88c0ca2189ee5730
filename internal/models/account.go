package models

import "time"

// Account mirrors a row of the accounts table.
type Account struct {
	ID             int64     `db:"id"`
	Balance        int64     `db:"balance"`
	CreatedAt      time.Time `db:"created_at"`
	UserID         int64     `db:"user_id"`
	DailySpend     int64     `db:"daily_spend"`
	DailyLimit     int64     `db:"daily_limit"`
	OperationLimit int64     `db:"operation_limit"`
	Version        int64     `db:"version"`
}
