// Package analytics contiene las vistas agregadas del dashboard: resumen,
// alertas, movimientos recientes y serie diaria.
package analytics

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/clock"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

// PeriodAggregator totaliza movimientos por día calendario sobre una ventana que termina hoy.
// Ventana: [inicio de hoy - (days-1), inicio de mañana), en la zona del reloj.
type PeriodAggregator struct {
	movRepo       repository.StockMovementRepository
	clock         clock.Clock
	maxWindowDays int
	log           *logger.Logger
}

// NewPeriodAggregator construye el agregador. maxWindowDays <= 0 = sin tope.
func NewPeriodAggregator(movRepo repository.StockMovementRepository, clk clock.Clock, maxWindowDays int, log *logger.Logger) *PeriodAggregator {
	return &PeriodAggregator{
		movRepo:       movRepo,
		clock:         clk,
		maxWindowDays: maxWindowDays,
		log:           log.Component("period_aggregator"),
	}
}

// DailySeries un registro por día con movimientos, orden ascendente.
// Días sin movimientos se omiten. Ventana inválida = ValidationError; falla de lectura = serie vacía.
func (a *PeriodAggregator) DailySeries(ctx context.Context, days int) ([]entity.DailyMovement, error) {
	if err := inventory.ValidateWindow(days, a.maxWindowDays); err != nil {
		return nil, err
	}
	from, to := inventory.Window(a.clock.Now(), days)

	series, err := a.movRepo.DailyTotals(ctx, from, to, from.Location())
	if err != nil {
		metrics.Degraded(metrics.ViewDailySeries)
		a.log.Warn().Err(err).Int("days", days).Msg("lectura del libro falló; serie vacía")
		return []entity.DailyMovement{}, nil
	}
	if series == nil {
		series = []entity.DailyMovement{}
	}
	return series, nil
}
