package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rec := &Recorder{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, rec)

	_, err := client.R().Get("/ok")
	require.NoError(t, err)
	_, err = client.R().Get("/missing")
	require.NoError(t, err)

	count, err := rec.LastCount(report_http_requests)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	var warnings []string
	for _, rep := range rec.Reports() {
		if rep.Kind == "warning" {
			warnings = append(warnings, rep.ID)
		}
	}
	require.Equal(t, []string{report_http_status}, warnings)
	require.Empty(t, rec.Broken(report_http_response))
}

func TestSpanName(t *testing.T) {
	require.Equal(t, "POST /Index/CheckRank", spanName("POST", "https://example.com/Index/CheckRank?x=1"))
	require.Equal(t, "GET", spanName("GET", "https://example.com"))
}
