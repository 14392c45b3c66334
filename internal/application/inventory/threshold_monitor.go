package inventory

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

// ThresholdMonitor lista los productos activos con stock en o bajo su mínimo.
// Es una vista consultiva: ante falla de lectura responde vacío, deja WARN y cuenta la degradación.
type ThresholdMonitor struct {
	source ActiveStockSource
	log    *logger.Logger
}

// NewThresholdMonitor construye el monitor.
func NewThresholdMonitor(source ActiveStockSource, log *logger.Logger) *ThresholdMonitor {
	return &ThresholdMonitor{source: source, log: log.Component("threshold_monitor")}
}

// BelowOrAtMinimum alertas ordenadas por stock asc (desempate por nombre), como máximo limit.
func (m *ThresholdMonitor) BelowOrAtMinimum(ctx context.Context, limit int) ([]entity.StockAlert, error) {
	if limit < 1 {
		return nil, domain.NewValidationError("limit", "debe ser mayor que cero")
	}
	products, balances, err := m.source.ActiveBalances(ctx)
	if err != nil {
		m.degraded(metrics.ViewAlerts, err)
		return []entity.StockAlert{}, nil
	}
	return inventory.SelectAlerts(products, balances, limit), nil
}

func (m *ThresholdMonitor) degraded(view string, err error) {
	metrics.Degraded(view)
	m.log.Warn().Err(err).Str("view", view).Msg("lectura de saldos falló; se responde vacío")
}
