package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "intake/contexts/payments/payment-intake-service/application"
	"intake/contexts/payments/payment-intake-service/domain/entities"
	domainerrors "intake/contexts/payments/payment-intake-service/domain/errors"
	"intake/contexts/payments/payment-intake-service/domain/services"
	"intake/contexts/payments/payment-intake-service/ports"
)

const (
	processedMessage   = "Processing completed successfully."
	faultMessageFormat = "Payment processing failed unexpectedly, %s"
)

type ResultKind string

const (
	ResultDecided          ResultKind = "decided"
	ResultValidationFailed ResultKind = "validation_failed"
	ResultFaulted          ResultKind = "faulted"
)

// ProcessPaymentCommand carries one inbound payment attempt. Request is
// nil when the transport failed to parse the payload; TransactionID then
// holds whatever id the transport could salvage, possibly empty.
type ProcessPaymentCommand struct {
	Request       *entities.PaymentRequest
	TransactionID string
}

type ProcessPaymentResult struct {
	Kind          ResultKind
	Success       bool
	TransactionID string
	Message       string
}

type ProcessPaymentUseCase struct {
	Ledger      ports.EventLedger
	Decision    ports.DecisionProvider
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute runs the intake state machine:
// 1) validate (skipped when the payload never parsed)
// 2) decide via the decision provider
// 3) append exactly one ledger event for the final outcome
// 4) return the composed result.
// Every path appends before returning. The one exception is the append
// itself failing: that error propagates untranslated, since without the
// ledger row the outcome is unknown to the caller by contract.
func (u ProcessPaymentUseCase) Execute(ctx context.Context, cmd ProcessPaymentCommand) (ProcessPaymentResult, error) {
	logger := application.ResolveLogger(u.Logger)

	transactionID := cmd.TransactionID
	if cmd.Request != nil {
		transactionID = cmd.Request.TransactionID
	}

	kind, outcome := u.run(ctx, logger, cmd, transactionID)

	if err := u.appendEvent(ctx, logger, cmd.Request, outcome, transactionID); err != nil {
		return ProcessPaymentResult{}, err
	}

	logger.Info("payment processed",
		"event", "payment_processed",
		"module", "payments/payment-intake-service",
		"layer", "application",
		"transaction_id", transactionID,
		"kind", string(kind),
		"approved", outcome.Approved,
	)

	return ProcessPaymentResult{
		Kind:          kind,
		Success:       outcome.Approved,
		TransactionID: transactionID,
		Message:       outcome.Message,
	}, nil
}

func (u ProcessPaymentUseCase) run(ctx context.Context, logger *slog.Logger, cmd ProcessPaymentCommand, transactionID string) (ResultKind, entities.PaymentOutcome) {
	if cmd.Request == nil {
		logger.Warn("payment payload unreadable",
			"event", "payment_payload_unreadable",
			"module", "payments/payment-intake-service",
			"layer", "application",
			"transaction_id", transactionID,
		)
		return ResultFaulted, entities.PaymentOutcome{
			Approved: false,
			Message:  fmt.Sprintf(faultMessageFormat, domainerrors.ErrInvalidPayload.Error()),
		}
	}

	if err := services.ValidatePaymentRequest(*cmd.Request); err != nil {
		logger.Warn("payment validation failed",
			"event", "payment_validation_failed",
			"module", "payments/payment-intake-service",
			"layer", "application",
			"transaction_id", transactionID,
		)
		return ResultValidationFailed, entities.PaymentOutcome{
			Approved: false,
			Message:  err.Error(),
		}
	}

	approved, err := u.Decision.Decide(ctx, *cmd.Request)
	if err != nil {
		logger.Error("decision provider failed",
			"event", "payment_decision_failed",
			"module", "payments/payment-intake-service",
			"layer", "application",
			"transaction_id", transactionID,
			"error", err.Error(),
		)
		return ResultFaulted, entities.PaymentOutcome{
			Approved: false,
			Message:  fmt.Sprintf(faultMessageFormat, err.Error()),
		}
	}

	return ResultDecided, entities.PaymentOutcome{
		Approved: approved,
		Message:  processedMessage,
	}
}

func (u ProcessPaymentUseCase) appendEvent(ctx context.Context, logger *slog.Logger, request *entities.PaymentRequest, outcome entities.PaymentOutcome, transactionID string) error {
	rowKey, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return fmt.Errorf("generate ledger row key: %w", err)
	}

	event := entities.NewPaymentEvent(request, outcome, transactionID, rowKey, u.now())
	if err := u.Ledger.AppendEvent(ctx, event); err != nil {
		logger.Error("ledger append failed",
			"event", "payment_ledger_append_failed",
			"module", "payments/payment-intake-service",
			"layer", "application",
			"transaction_id", transactionID,
			"row_key", rowKey,
			"error", err.Error(),
		)
		return fmt.Errorf("append payment event: %w", err)
	}
	return nil
}

func (u ProcessPaymentUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now()
	}
	return time.Now().UTC()
}
