package ports

import (
	"context"
	"time"

	"intake/contexts/payments/payment-intake-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventLedger is the durable append-only store for payment events.
// There are no update, delete, or read operations: the processing core is
// write-only against the ledger.
type EventLedger interface {
	AppendEvent(ctx context.Context, event entities.PaymentEvent) error
}

// DecisionProvider yields an approve/reject verdict for a validated
// request. Implementations may block on network I/O; an error here is a
// processing fault, not a rejection.
type DecisionProvider interface {
	Decide(ctx context.Context, request entities.PaymentRequest) (bool, error)
}
