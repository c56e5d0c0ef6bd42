package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	paymentintakeservice "intake/contexts/payments/payment-intake-service"
	"intake/contexts/payments/payment-intake-service/adapters/decision"
	"intake/contexts/payments/payment-intake-service/domain/entities"
	domainerrors "intake/contexts/payments/payment-intake-service/domain/errors"
	paymenthttp "intake/contexts/payments/payment-intake-service/transport/http"
	"intake/contexts/payments/payment-intake-service/ports"
)

func newTestServer(provider ports.DecisionProvider) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	module := paymentintakeservice.NewInMemoryModule(provider, logger)
	return New(module, logger, ":0")
}

func postPayment(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/payment-process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodePaymentResponse(t *testing.T, rr *httptest.ResponseRecorder) paymenthttp.ProcessPaymentResponse {
	t.Helper()
	var resp paymenthttp.ProcessPaymentResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v body=%s", err, rr.Body.String())
	}
	return resp
}

const validPaymentBody = `{"transactionId":"T1","totalAmount":50,"payment":{"method":"card","token":"tok_abc"}}`

func TestProcessPaymentApproved(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	rr := postPayment(t, server, validPaymentBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	resp := decodePaymentResponse(t, rr)
	if !resp.Success || resp.TransactionID != "T1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Message != "Processing completed successfully." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	events := server.payments.Store.EventsForTransaction("T1")
	if len(events) != 1 {
		t.Fatalf("expected exactly one ledger event, got %d", len(events))
	}
	event := events[0]
	if event.EventType != entities.EventTypePaymentApproved || !event.Approved {
		t.Fatalf("expected approved event, got %+v", event)
	}
	if !event.Amount.Equal(decimal.NewFromInt(50)) || event.Method != "card" {
		t.Fatalf("event fields not carried: %+v", event)
	}
}

func TestProcessPaymentRejected(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: false})

	rr := postPayment(t, server, validPaymentBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for a decided rejection, got %d", rr.Code)
	}

	resp := decodePaymentResponse(t, rr)
	if resp.Success {
		t.Fatalf("expected success=false, got %+v", resp)
	}
	if resp.Message != "Processing completed successfully." {
		t.Fatalf("rejection must be conveyed by the flag, not the message: %q", resp.Message)
	}

	events := server.payments.Store.EventsForTransaction("T1")
	if len(events) != 1 || events[0].EventType != entities.EventTypePaymentRejected {
		t.Fatalf("expected one rejected event, got %+v", events)
	}
}

func TestProcessPaymentValidationFailure(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	rr := postPayment(t, server, `{"transactionId":"T1","totalAmount":50,"payment":{"method":"card","token":"  "}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	resp := decodePaymentResponse(t, rr)
	if resp.Success || !strings.Contains(resp.Message, "token, method or amount") {
		t.Fatalf("unexpected response: %+v", resp)
	}

	events := server.payments.Store.EventsForTransaction("T1")
	if len(events) != 1 || events[0].Approved {
		t.Fatalf("expected one unapproved event, got %+v", events)
	}
}

func TestProcessPaymentAbsentAmountFailsValidation(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	rr := postPayment(t, server, `{"transactionId":"T1","payment":{"method":"card","token":"tok_abc"}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if resp := decodePaymentResponse(t, rr); resp.Success {
		t.Fatalf("expected success=false, got %+v", resp)
	}
}

func TestProcessPaymentNegativeAmountIsDecided(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	rr := postPayment(t, server, `{"transactionId":"T1","totalAmount":-5,"payment":{"method":"card","token":"tok_abc"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected negative amount to reach a decision, got %d", rr.Code)
	}
}

func TestProcessPaymentMalformedBodyStillLogsEvent(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	rr := postPayment(t, server, `{"transactionId":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	resp := decodePaymentResponse(t, rr)
	if resp.Success {
		t.Fatalf("expected success=false, got %+v", resp)
	}

	events := server.payments.Store.AllEvents()
	if len(events) != 1 {
		t.Fatalf("expected exactly one ledger event, got %d", len(events))
	}
	event := events[0]
	if event.Method != entities.MethodUnknown || !event.Amount.IsZero() {
		t.Fatalf("expected defaulted event fields, got %+v", event)
	}
}

func TestProcessPaymentRepeatedTransactionKeepsBothRows(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	for i := 0; i < 2; i++ {
		if rr := postPayment(t, server, validPaymentBody); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}

	events := server.payments.Store.EventsForTransaction("T1")
	if len(events) != 2 || events[0].RowKey == events[1].RowKey {
		t.Fatalf("expected two distinct rows, got %+v", events)
	}
}

func TestProcessPaymentRejectsGet(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	req := httptest.NewRequest(http.MethodGet, "/payment-process", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET on a mutating endpoint, got %d", rr.Code)
	}
}

func TestProcessPaymentLedgerFailureReturns500(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})
	server.payments.Store.FailAppendsWith(domainerrors.ErrLedgerAppendFailed)

	rr := postPayment(t, server, validPaymentBody)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var errResp paymenthttp.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != "ledger_write_failed" {
		t.Fatalf("unexpected error code %q", errResp.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(decision.FixedProvider{Approved: true})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
