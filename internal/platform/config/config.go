package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// LedgerAppendMaxRetries bounds retrying of transient ledger append
	// failures. Zero disables retrying.
	LedgerAppendMaxRetries uint64

	// DecisionSeed pins the placeholder random decision provider for
	// reproducible local runs. Zero seeds from the wall clock.
	DecisionSeed int64
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "payment-intake"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName:            service,
		HTTPPort:               port,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		LedgerAppendMaxRetries: envUint("LEDGER_APPEND_MAX_RETRIES", 3),
		DecisionSeed:           envInt("DECISION_SEED", 0),
	}, nil
}

func envUint(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
