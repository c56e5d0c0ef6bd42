package http

import "github.com/shopspring/decimal"

type PaymentDetailsDTO struct {
	Method string `json:"method"`
	Token  string `json:"token"`
}

type ProcessPaymentRequest struct {
	TransactionID string            `json:"transactionId"`
	TotalAmount   *decimal.Decimal  `json:"totalAmount,omitempty"`
	Payment       PaymentDetailsDTO `json:"payment"`
}

type ProcessPaymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
