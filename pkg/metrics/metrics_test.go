package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

func TestDegraded_IncrementaPorVista(t *testing.T) {
	before := testutil.ToFloat64(metrics.AdvisoryDegraded.WithLabelValues(metrics.ViewAlerts))
	metrics.Degraded(metrics.ViewAlerts)
	after := testutil.ToFloat64(metrics.AdvisoryDegraded.WithLabelValues(metrics.ViewAlerts))
	assert.Equal(t, before+1, after)
}

func TestHandler_ExponeContadores(t *testing.T) {
	metrics.LedgerAppends.WithLabelValues("INBOUND").Inc()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `stockpro_ledger_appends_total{type="INBOUND"}`))
}
