package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	paymentintakeservice "intake/contexts/payments/payment-intake-service"
	"intake/contexts/payments/payment-intake-service/adapters/decision"
	postgresadapter "intake/contexts/payments/payment-intake-service/adapters/postgres"
	"intake/internal/platform/config"
	"intake/internal/platform/db"
	"intake/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger).
		WithAppendMaxRetries(cfg.LedgerAppendMaxRetries)

	// Schema setup happens once here, not per request.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = pg.Close()
		return nil, err
	}

	seed := cfg.DecisionSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	module := paymentintakeservice.NewModule(paymentintakeservice.Dependencies{
		Ledger:      repo,
		Decision:    decision.NewRandomProvider(rand.NewSource(seed)),
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run() error {
	defer func() {
		if err := a.postgres.Close(); err != nil {
			a.logger.Error("postgres close failed",
				"event", "postgres_close_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()
	return a.server.Start()
}

func normalizeAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
