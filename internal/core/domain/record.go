package domain

import (
	"time"
	"unicode/utf8"
)

// OperationType names the kind of operation a Record audits.
type OperationType string

const (
	OperationCreateAccount         OperationType = "CreateAccount"
	OperationPayment               OperationType = "Payment"
	OperationDeposit               OperationType = "Deposit"
	OperationWithdrawal            OperationType = "Withdrawal"
	OperationTransfer              OperationType = "Transfer"
	OperationCreditApplication     OperationType = "CreditApplication"
	OperationAutomaticPaymentSetup OperationType = "AutomaticPaymentSetup"
	OperationSupportRequest        OperationType = "SupportRequest"
)

// MaxErrorMessageLength bounds Record.ErrorMessage.
const MaxErrorMessageLength = 255

// OperationTypes lists every operation type in declaration order.
var OperationTypes = []OperationType{
	OperationCreateAccount, OperationPayment, OperationDeposit, OperationWithdrawal,
	OperationTransfer, OperationCreditApplication, OperationAutomaticPaymentSetup, OperationSupportRequest,
}

// Replayable reports whether a pending record of this type can be executed again by support.
func (t OperationType) Replayable() bool {
	return t == OperationWithdrawal || t == OperationTransfer
}

// Record is an append-only audit entry. One is written for every attempted ledger operation.
type Record struct {
	ID                int64         `json:"id"`
	TimeStamp         time.Time     `json:"timeStamp"`
	OperationType     OperationType `json:"operationType"`
	Amount            int64         `json:"amount"`
	UserID            int64         `json:"userId"`
	AccountID         *int64        `json:"accountId,omitempty"`
	ReceiverAccountID *int64        `json:"receiverAccountId,omitempty"`
	IsSuccessfull     bool          `json:"isSuccessfull"`
	ErrorMessage      *string       `json:"errorMessage,omitempty"`
	IsPending         bool          `json:"isPending"`
}

// NewRecord starts a successful record. Use Fail to turn it into a failure record.
func NewRecord(op OperationType, amount, userID int64, at time.Time) *Record {
	return &Record{
		TimeStamp:     at,
		OperationType: op,
		Amount:        amount,
		UserID:        userID,
		IsSuccessfull: true,
	}
}

// WithAccount sets the source account.
func (r *Record) WithAccount(accountID int64) *Record {
	r.AccountID = &accountID
	return r
}

// WithReceiver sets the receiving account of a transfer.
func (r *Record) WithReceiver(accountID int64) *Record {
	r.ReceiverAccountID = &accountID
	return r
}

// Fail marks the record unsuccessful with message, truncated to MaxErrorMessageLength runes.
func (r *Record) Fail(message string, pending bool) *Record {
	msg := truncate(message, MaxErrorMessageLength)
	r.IsSuccessfull = false
	r.ErrorMessage = &msg
	r.IsPending = pending
	return r
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
