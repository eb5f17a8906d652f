package main

import (
	"casetrace-backend/cmd/casetrace/commands"
	"casetrace-backend/lib/serviceutil"
	"casetrace-backend/lib/telemetry"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "casetrace")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry, continuing without it", "err", err.Error())
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := tel.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr.Error())
	}

	if err != nil {
		os.Exit(1)
	}
}
