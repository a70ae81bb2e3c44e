package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPINests(t *testing.T) {
	rec := &Recorder{}
	tel := NewScopedAPI("run-1", NewScopedAPI("harvest", rec))

	tel.ReportBroken("harvest.run", errors.New("boom"))
	tel.ReportCount("harvest.inserted", 3)

	require.Equal(t, []string{"harvest/run-1: harvest.run"}, rec.Broken("harvest.run"))
	count, err := rec.LastCount("harvest.inserted")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestSlogAPIAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(newHandler(buf, true, false)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	SlogAPI{}.ReportBroken("store.add", errors.New("disk full"), "Alice")

	out := buf.String()
	require.Contains(t, out, "id=store.add")
	require.Contains(t, out, `err="disk full"`)
	require.Contains(t, out, "params.1=Alice")
}

func TestEndpointProtocol(t *testing.T) {
	testCases := []struct {
		name     string
		endpoint Endpoint
		expected string
	}{
		{name: "none", expected: protocolNone},
		{name: "http", endpoint: Endpoint{Http: "http://localhost:4318"}, expected: protocolHttp},
		{name: "grpc wins", endpoint: Endpoint{Grpc: "http://localhost:4317", Http: "http://localhost:4318"}, expected: protocolGrpc},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.endpoint.protocol())
		})
	}
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "swimrank-test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}
