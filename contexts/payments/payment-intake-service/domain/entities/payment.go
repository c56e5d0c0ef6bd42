package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventTypePaymentApproved = "PaymentApproved"
	EventTypePaymentRejected = "PaymentRejected"
)

// MethodUnknown is recorded when the originating request never parsed, so
// no payment method is available for the ledger row.
const MethodUnknown = "N/A"

type PaymentDetails struct {
	Method string
	Token  string
}

// PaymentRequest is caller-supplied and lives only for one processing call.
// TotalAmount is optional on the wire; absence and zero are distinct states.
type PaymentRequest struct {
	TransactionID string
	TotalAmount   *decimal.Decimal
	Payment       PaymentDetails
}

// PaymentOutcome is the verdict produced by the decision provider or by
// processor-internal fault handling.
type PaymentOutcome struct {
	Approved bool
	Message  string
}

// PaymentEvent is the sole durable artifact of a processing call. Once
// appended it is immutable; history for a transaction is the ordered set
// of its events under one partition key.
type PaymentEvent struct {
	PartitionKey string
	RowKey       string
	EventType    string
	Approved     bool
	Amount       decimal.Decimal
	Method       string
	Message      string
	EventTime    time.Time
}

// NewPaymentEvent builds the ledger record for a finished processing call.
// request may be nil on the parse-failure path; fields then fall back to
// safe defaults instead of dereferencing an absent request.
func NewPaymentEvent(request *PaymentRequest, outcome PaymentOutcome, transactionID string, rowKey string, eventTime time.Time) PaymentEvent {
	method := MethodUnknown
	amount := decimal.Zero
	if request != nil {
		if request.Payment.Method != "" {
			method = request.Payment.Method
		}
		if request.TotalAmount != nil {
			amount = *request.TotalAmount
		}
	}

	eventType := EventTypePaymentRejected
	if outcome.Approved {
		eventType = EventTypePaymentApproved
	}

	return PaymentEvent{
		PartitionKey: transactionID,
		RowKey:       rowKey,
		EventType:    eventType,
		Approved:     outcome.Approved,
		Amount:       amount,
		Method:       method,
		Message:      outcome.Message,
		EventTime:    eventTime.UTC(),
	}
}
