package main

import (
	"context"
	"log/slog"
	"os"
	"swimrank-backend/cmd/swimrank/commands"
	"swimrank-backend/internal/serviceutil"
	"swimrank-backend/internal/telemetry"
	"time"
	_ "time/tzdata"
)

func main() {
	ctx, stop := serviceutil.SignalContext(context.Background())

	exporters, err := telemetry.SetupFromEnv(ctx, "swimrank")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}

	code := 0
	if commands.ExecuteContext(ctx) != nil {
		code = 1
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = exporters.Shutdown(flushCtx)
	cancel()
	if err != nil {
		slog.Warn("flush telemetry", "err", err)
	}

	stop()
	os.Exit(code)
}
