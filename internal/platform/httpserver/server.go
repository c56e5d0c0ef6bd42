package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	paymentintakeservice "intake/contexts/payments/payment-intake-service"
	"intake/contexts/payments/payment-intake-service/application/commands"
	paymentdomainerrors "intake/contexts/payments/payment-intake-service/domain/errors"
	paymenthttp "intake/contexts/payments/payment-intake-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "intake/internal/platform/httpserver/docs"
)

// maxPaymentBodyBytes caps the intake payload; oversized bodies are
// treated like unreadable payloads and still leave a ledger trace.
const maxPaymentBodyBytes = 1 << 20

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	payments paymentintakeservice.Module
}

func New(payments paymentintakeservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		payments: payments,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", metricsHandler())
	s.mux.HandleFunc("GET /health", instrumentHandler("health", s.handleHealth))

	// Mutating endpoint, POST only. The legacy surface also answered GET;
	// that is deliberately not carried over.
	s.mux.HandleFunc("POST /payment-process", instrumentHandler("payment-process", s.handleProcessPayment))
}

func (s *Server) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPaymentBodyBytes))

	// A payload that cannot be read or parsed still flows through the
	// processor as a nil request, so the fault leaves a ledger trace.
	var parsed *paymenthttp.ProcessPaymentRequest
	if readErr == nil {
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			var req paymenthttp.ProcessPaymentRequest
			if err := json.Unmarshal(trimmed, &req); err == nil {
				parsed = &req
			}
		}
	}

	resp, kind, err := s.payments.Handler.ProcessPaymentHandler(r.Context(), parsed)
	if err != nil {
		writePaymentDomainError(w, err)
		return
	}

	status := http.StatusOK
	if kind != commands.ResultDecided {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writePaymentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentdomainerrors.ErrLedgerAppendFailed),
		errors.Is(err, paymentdomainerrors.ErrDuplicateEventRow):
		// Durability contract broken: no event written, outcome unknown.
		writePaymentError(w, http.StatusInternalServerError, "ledger_write_failed",
			"payment outcome was not durably recorded; reconcile out-of-band")
	default:
		writePaymentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePaymentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, paymenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
