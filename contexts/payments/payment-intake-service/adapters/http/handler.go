package httpadapter

import (
	"context"
	"log/slog"

	application "intake/contexts/payments/payment-intake-service/application"
	"intake/contexts/payments/payment-intake-service/application/commands"
	"intake/contexts/payments/payment-intake-service/domain/entities"
	httptransport "intake/contexts/payments/payment-intake-service/transport/http"
)

type Handler struct {
	ProcessPayment commands.ProcessPaymentUseCase
	Logger         *slog.Logger
}

// ProcessPaymentHandler godoc
// @Summary Process a payment request
// @Description Validates the request, obtains an approve/reject decision, and appends one immutable event to the payment ledger before responding. Rejections and faults also return a well-formed body; the success flag conveys the outcome.
// @Tags payment-intake
// @Accept json
// @Produce json
// @Param request body httptransport.ProcessPaymentRequest true "Payment request"
// @Success 200 {object} httptransport.ProcessPaymentResponse
// @Failure 400 {object} httptransport.ProcessPaymentResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /payment-process [post]
func (h Handler) ProcessPaymentHandler(ctx context.Context, req *httptransport.ProcessPaymentRequest) (httptransport.ProcessPaymentResponse, commands.ResultKind, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("payment process request received",
		"event", "http_payment_process_received",
		"module", "payments/payment-intake-service",
		"layer", "transport",
		"parsed", req != nil,
	)

	cmd := commands.ProcessPaymentCommand{}
	if req != nil {
		request := entities.PaymentRequest{
			TransactionID: req.TransactionID,
			TotalAmount:   req.TotalAmount,
			Payment: entities.PaymentDetails{
				Method: req.Payment.Method,
				Token:  req.Payment.Token,
			},
		}
		cmd.Request = &request
	}

	result, err := h.ProcessPayment.Execute(ctx, cmd)
	if err != nil {
		logger.Error("payment process request failed",
			"event", "http_payment_process_failed",
			"module", "payments/payment-intake-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.ProcessPaymentResponse{}, "", err
	}

	return composeResponse(result), result.Kind, nil
}

// composeResponse is the pure outcome-to-payload mapping; no side effects.
func composeResponse(result commands.ProcessPaymentResult) httptransport.ProcessPaymentResponse {
	return httptransport.ProcessPaymentResponse{
		Success:       result.Success,
		TransactionID: result.TransactionID,
		Message:       result.Message,
	}
}
