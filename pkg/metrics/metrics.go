// Package metrics registra los contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Vistas consultivas que pueden degradar a resultado vacío.
const (
	ViewAlerts      = "alerts"
	ViewDailySeries = "daily_series"
	ViewRecentMoves = "recent_movements"
)

// Registry registro propio (no el global) para aislar tests y el endpoint /metrics.
var Registry = prometheus.NewRegistry()

var (
	LedgerAppends = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "stockpro_ledger_appends_total",
		Help: "Movimientos agregados al libro, por tipo.",
	}, []string{"type"})

	AdvisoryDegraded = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "stockpro_advisory_degraded_total",
		Help: "Vistas consultivas que respondieron vacío por falla de lectura.",
	}, []string{"view"})

	HTTPRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "stockpro_http_requests_total",
		Help: "Peticiones HTTP por método, ruta y código.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockpro_http_request_duration_seconds",
		Help:    "Latencia de peticiones HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Degraded marca una vista consultiva como degradada.
func Degraded(view string) {
	AdvisoryDegraded.WithLabelValues(view).Inc()
}

// Handler expone el registro en formato texto de Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
