package errors

import "errors"

var (
	ErrInvalidPaymentBody = errors.New("invalid payment body: token, method or amount")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrDuplicateEventRow  = errors.New("ledger row key already exists")
	ErrLedgerAppendFailed = errors.New("ledger append failed")
)
