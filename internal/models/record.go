package models

import "time"

// Record mirrors a row of the records table. Nullable columns are pointers.
type Record struct {
	ID                int64     `db:"id"`
	TimeStamp         time.Time `db:"time_stamp"`
	OperationType     string    `db:"operation_type"`
	Amount            int64     `db:"amount"`
	UserID            int64     `db:"user_id"`
	AccountID         *int64    `db:"account_id"`
	ReceiverAccountID *int64    `db:"receiver_account_id"`
	IsSuccessfull     bool      `db:"is_successfull"`
	ErrorMessage      *string   `db:"error_message"`
	IsPending         bool      `db:"is_pending"`
}
