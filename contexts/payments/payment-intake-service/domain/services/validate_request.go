package services

import (
	"strings"

	"intake/contexts/payments/payment-intake-service/domain/entities"
	domainerrors "intake/contexts/payments/payment-intake-service/domain/errors"
)

// ValidatePaymentRequest checks structural validity of an inbound request.
// All predicates are evaluated; any failing one fails the whole check with
// a single combined error, without naming the individual field.
//
// The amount predicate is presence-only: a present zero or negative amount
// passes. Sign and range enforcement belong to the authorization step, not
// to intake validation.
func ValidatePaymentRequest(request entities.PaymentRequest) error {
	tokenValid := strings.TrimSpace(request.Payment.Token) != ""
	methodValid := strings.TrimSpace(request.Payment.Method) != ""
	amountValid := request.TotalAmount != nil

	if !tokenValid || !methodValid || !amountValid {
		return domainerrors.ErrInvalidPaymentBody
	}
	return nil
}
