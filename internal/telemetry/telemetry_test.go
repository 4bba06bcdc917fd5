package telemetry

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("bogus"))
}

func TestPrettyHandler_PrefixesAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelInfo)
	t.Cleanup(func() { Init(slog.LevelInfo) })

	Debugf("hidden %d", 1)
	Infof("rows=%d", 3)
	Warnf("missing %s", "home")
	Errorf("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "] rows=3\n")
	assert.Contains(t, out, "] WARN: missing home\n")
	assert.Contains(t, out, "] ERROR: boom\n")
}

func TestHandler_ExposesCounters(t *testing.T) {
	Metrics.NamesResolved.WithLabelValues(SourceAlias).Inc()
	Metrics.ProviderLatency.WithLabelValues("status").Observe(0.2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `loteca_names_resolved_total{source="alias"}`)
	assert.Contains(t, body, `loteca_provider_request_seconds_bucket{endpoint="status",le="0.25"}`)
	assert.Contains(t, body, `loteca_provider_request_seconds_count{endpoint="status"}`)
}
