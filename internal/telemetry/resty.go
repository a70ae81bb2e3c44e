package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_http_request  = "http.request"
	report_http_response = "http.response"
	report_http_status   = "http.status"
	report_http_requests = "http.requests"
)

type restyHooks struct {
	tel    API
	tracer trace.Tracer
	sent   *atomic.Int64
}

type restyCtxKey struct{}

type restyCtx struct {
	seq     int64
	started time.Time
}

// InstrumentResty wraps every request made through `client` in a span and
// reports it to `tel`. Responses with an error status are reported as
// warnings, transport failures as broken.
func InstrumentResty(client *resty.Client, tel API) {
	h := restyHooks{
		tel:    tel,
		tracer: otel.Tracer("swimrank/http"),
		sent:   &atomic.Int64{},
	}
	client.OnBeforeRequest(h.before)
	client.OnAfterResponse(h.after)
	client.OnError(h.failed)
}

func spanName(method, rawUrl string) string {
	parsed, err := url.Parse(rawUrl)
	if err != nil || parsed.Path == "" {
		return method
	}
	return fmt.Sprintf("%s %s", method, parsed.Path)
}

func (h restyHooks) before(_ *resty.Client, req *resty.Request) error {
	ctx, _ := h.tracer.Start(req.Context(), spanName(req.Method, req.URL))

	seq := h.sent.Add(1)
	ctx = context.WithValue(ctx, restyCtxKey{}, restyCtx{seq: seq, started: time.Now()})
	req.SetContext(ctx)

	h.tel.ReportDebug(report_http_request, seq, req.Method, req.URL)
	h.tel.ReportCount(report_http_requests, seq)
	return nil
}

func (h restyHooks) after(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	if res.Request.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	}
	if res.RawResponse != nil {
		span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	}

	rc, _ := ctx.Value(restyCtxKey{}).(restyCtx)
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		h.tel.ReportWarning(report_http_status, rc.seq, res.Request.Method, res.Request.URL, res.Status())
		return nil
	}
	h.tel.ReportDebug(report_http_response, rc.seq, res.Status(), time.Since(rc.started).String())
	return nil
}

func (h restyHooks) failed(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()
	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")

	rc, _ := ctx.Value(restyCtxKey{}).(restyCtx)
	var elapsed time.Duration
	if !rc.started.IsZero() {
		elapsed = time.Since(rc.started)
	}
	h.tel.ReportBroken(report_http_response, err, req.Method, req.URL, elapsed)
}
