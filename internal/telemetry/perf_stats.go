package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var (
	perfMeter         = otel.Meter("swimrank.perf_stats")
	cpuGauge, _       = perfMeter.Float64Gauge("cpu_usage")
	heapGauge, _      = perfMeter.Int64Gauge("heap_mb")
	goroutineGauge, _ = perfMeter.Int64Gauge("goroutine_count")
)

// InstrumentPerfStats samples process stats every `interval` until ctx is
// done. The watch command runs for days, this is how a leaking browser
// session shows up.
func InstrumentPerfStats(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// the first call only primes the cpu counters
		_, _ = cpu.PercentWithContext(ctx, 0, false)

		var mem runtime.MemStats
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			runtime.ReadMemStats(&mem)
			heapMb := int64(mem.HeapAlloc / 1_000_000)
			goroutines := int64(runtime.NumGoroutine())
			heapGauge.Record(ctx, heapMb)
			goroutineGauge.Record(ctx, goroutines)

			usage, err := cpu.PercentWithContext(ctx, 0, false)
			if err != nil {
				slog.Warn("read cpu usage", "err", err)
				continue
			}
			if len(usage) > 0 {
				cpuGauge.Record(ctx, usage[0])
				slog.Debug("perf stats", "cpu", usage[0], "heap_mb", heapMb, "goroutines", goroutines)
			}
		}
	}()
}
