package paymentintakeservice

import (
	"log/slog"

	httpadapter "intake/contexts/payments/payment-intake-service/adapters/http"
	"intake/contexts/payments/payment-intake-service/adapters/memory"
	"intake/contexts/payments/payment-intake-service/application/commands"
	"intake/contexts/payments/payment-intake-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ledger      ports.EventLedger
	Decision    ports.DecisionProvider
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	useCase := commands.ProcessPaymentUseCase{
		Ledger:      deps.Ledger,
		Decision:    deps.Decision,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			ProcessPayment: useCase,
			Logger:         deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory ledger with the
// given decision provider. Test and local-runtime fixture.
func NewInMemoryModule(provider ports.DecisionProvider, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger:      store,
		Decision:    provider,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
