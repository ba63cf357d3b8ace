package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAttempt(MethodLogin, OutcomeSuccess)
	c.RecordAttempt(MethodLogin, OutcomeSuccess)
	c.RecordAttempt(MethodLogin, OutcomeRejected)

	require.Equal(t, 2.0, testutil.ToFloat64(c.attempts.WithLabelValues(MethodLogin, OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.attempts.WithLabelValues(MethodLogin, OutcomeRejected)))
}

func TestRecordSessionIssued(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordSessionIssued()
	require.Equal(t, 1.0, testutil.ToFloat64(c.sessionsIssued))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordExchangeLatency("github", 150*time.Millisecond)
	c.RecordAttempt(MethodOAuth2, OutcomeError)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `authd_oauth2_exchange_seconds_count{provider="github"} 1`))
	require.True(t, strings.Contains(string(body), `authd_auth_attempts_total{method="oauth2",outcome="error"} 1`))
}
