package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InitSlog installs the default slog logger on stderr, text unless `json`.
func InitSlog(verbose, json bool) {
	slog.SetDefault(slog.New(newHandler(os.Stderr, verbose, json)))
}

func newHandler(w io.Writer, verbose, json bool) slog.Handler {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

var countGauge, _ = otel.Meter("swimrank.telemetry").Int64Gauge("report_count")

// SlogAPI implements API with the default slog logger, counts are also
// recorded on the report_count gauge.
type SlogAPI struct{}

// attrs turns params into slog pairs, errors go under "err" and the rest
// under their position.
func (SlogAPI) attrs(out []any, params []any) []any {
	for i, p := range params {
		if err, ok := p.(error); ok {
			out = append(out, "err", err)
			continue
		}
		out = append(out, fmt.Sprintf("params.%d", i), p)
	}
	return out
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	slog.Error("broken component", s.attrs([]any{"id", id}, params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("warning", s.attrs([]any{"id", id}, params)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	slog.Debug(message, s.attrs(nil, params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)
	countGauge.Record(context.Background(), count, metric.WithAttributes(attribute.String("id", id)))
}
