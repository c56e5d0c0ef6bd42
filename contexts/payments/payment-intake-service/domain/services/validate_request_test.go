package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"intake/contexts/payments/payment-intake-service/domain/entities"
	domainerrors "intake/contexts/payments/payment-intake-service/domain/errors"
)

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func validRequest() entities.PaymentRequest {
	return entities.PaymentRequest{
		TransactionID: "T1",
		TotalAmount:   amountPtr(50),
		Payment: entities.PaymentDetails{
			Method: "card",
			Token:  "tok_abc",
		},
	}
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	if err := ValidatePaymentRequest(validRequest()); err != nil {
		t.Fatalf("expected valid request to pass, got %v", err)
	}
}

func TestValidateRejectsBlankToken(t *testing.T) {
	for _, token := range []string{"", "   ", "\t\n"} {
		request := validRequest()
		request.Payment.Token = token
		if err := ValidatePaymentRequest(request); !errors.Is(err, domainerrors.ErrInvalidPaymentBody) {
			t.Fatalf("token %q: expected ErrInvalidPaymentBody, got %v", token, err)
		}
	}
}

func TestValidateRejectsBlankMethod(t *testing.T) {
	request := validRequest()
	request.Payment.Method = "  "
	if err := ValidatePaymentRequest(request); !errors.Is(err, domainerrors.ErrInvalidPaymentBody) {
		t.Fatalf("expected ErrInvalidPaymentBody, got %v", err)
	}
}

func TestValidateRejectsAbsentAmount(t *testing.T) {
	request := validRequest()
	request.TotalAmount = nil
	if err := ValidatePaymentRequest(request); !errors.Is(err, domainerrors.ErrInvalidPaymentBody) {
		t.Fatalf("expected ErrInvalidPaymentBody, got %v", err)
	}
}

func TestValidateAmountCheckIsPresenceOnly(t *testing.T) {
	// Zero and negative amounts pass; only absence fails.
	for _, amount := range []int64{0, -5} {
		request := validRequest()
		request.TotalAmount = amountPtr(amount)
		if err := ValidatePaymentRequest(request); err != nil {
			t.Fatalf("amount %d: expected pass, got %v", amount, err)
		}
	}
}
