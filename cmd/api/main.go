package main

import (
	"log/slog"
	"os"

	"intake/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use case).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed", "error", err.Error())
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		slog.Error("api server stopped", "error", err.Error())
		os.Exit(1)
	}
}
