package models

import "time"

// Bill mirrors a row of the bills table.
type Bill struct {
	ID          int64     `db:"id"`
	Amount      int64     `db:"amount"`
	LastPayTime time.Time `db:"last_pay_time"`
	IsActive    bool      `db:"is_active"`
	AccountID   int64     `db:"account_id"`
}
