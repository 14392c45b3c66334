package analytics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/clock"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

// Formatos de presentación del dashboard.
const (
	recentDateLayout = "02/01/2006 15:04"
	chartLabelLayout = "02/01"
	chartDateLayout  = "2006-01-02"
)

// AlertSource vista de productos en o bajo el mínimo.
type AlertSource interface {
	BelowOrAtMinimum(ctx context.Context, limit int) ([]entity.StockAlert, error)
}

// SeriesSource serie diaria de movimientos.
type SeriesSource interface {
	DailySeries(ctx context.Context, days int) ([]entity.DailyMovement, error)
}

// DashboardDefaults límites usados cuando el llamador no informa uno.
type DashboardDefaults struct {
	AlertLimit  int
	RecentLimit int
	ChartDays   int
}

// DashboardUseCase compone las vistas del dashboard de inventario.
//
// El resumen propaga fallas de lectura; alertas, movimientos recientes y gráfico
// degradan a vacío para que el panel siempre se pueda renderizar.
type DashboardUseCase struct {
	stock    inventory.ActiveStockSource
	alerts   AlertSource
	series   SeriesSource
	movRepo  repository.StockMovementRepository
	clock    clock.Clock
	defaults DashboardDefaults
	log      *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	stock inventory.ActiveStockSource,
	alerts AlertSource,
	series SeriesSource,
	movRepo repository.StockMovementRepository,
	clk clock.Clock,
	defaults DashboardDefaults,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		stock:    stock,
		alerts:   alerts,
		series:   series,
		movRepo:  movRepo,
		clock:    clk,
		defaults: defaults,
		log:      log.Component("dashboard"),
	}
}

// GetSummary total de productos activos, stock total y cantidad de alertas.
// Los tres valores salen de una sola lectura de saldos, así que son consistentes entre sí.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	products, balances, err := uc.stock.ActiveBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: saldos activos: %w", err)
	}
	return &dto.DashboardSummaryDTO{
		TotalProducts: len(products),
		TotalStock:    inventory.SumBalances(balances),
		BelowMinimum:  domaininv.CountAlerts(products, balances),
	}, nil
}

// Defaults límites configurados para cuando el llamador no informa uno.
func (uc *DashboardUseCase) Defaults() DashboardDefaults {
	return uc.defaults
}

// GetAlerts alertas de stock mínimo, como máximo limit.
func (uc *DashboardUseCase) GetAlerts(ctx context.Context, limit int) ([]dto.StockAlertDTO, error) {
	alerts, err := uc.alerts.BelowOrAtMinimum(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.StockAlertDTO{
			ProductID:    a.Product.ID,
			SKU:          a.Product.SKU,
			Name:         a.Product.Name,
			Unit:         a.Product.Unit,
			CurrentStock: a.CurrentStock,
			Minimum:      a.Minimum,
		})
	}
	return out, nil
}

// GetRecentMovements últimos movimientos formateados para mostrar.
func (uc *DashboardUseCase) GetRecentMovements(ctx context.Context, limit int) ([]dto.RecentMovementDTO, error) {
	if limit < 1 || limit > inventory.MaxMovementPage {
		return nil, domain.NewValidationError("limit", fmt.Sprintf("debe estar entre 1 y %d", inventory.MaxMovementPage))
	}
	movements, err := uc.movRepo.ListRecent(ctx, limit)
	if err != nil {
		metrics.Degraded(metrics.ViewRecentMoves)
		uc.log.Warn().Err(err).Msg("lectura de movimientos recientes falló; lista vacía")
		return []dto.RecentMovementDTO{}, nil
	}

	loc := uc.clock.Now().Location()
	out := make([]dto.RecentMovementDTO, 0, len(movements))
	for _, m := range movements {
		actor := m.CreatedBy
		if actor == "" {
			actor = m.Source
		}
		out = append(out, dto.RecentMovementDTO{
			ID:                m.ID,
			ProductID:         m.ProductID,
			SKU:               m.ProductSKU,
			ProductName:       m.ProductName,
			Type:              m.Type,
			Quantity:          m.Quantity,
			FormattedQuantity: FormatSignedQuantity(m.Type, m.Quantity),
			FormattedDate:     m.OccurredAt.In(loc).Format(recentDateLayout),
			Source:            m.Source,
			Actor:             actor,
		})
	}
	return out, nil
}

// GetChart serie diaria para el gráfico de los últimos days días.
func (uc *DashboardUseCase) GetChart(ctx context.Context, days int) (*dto.DailySeriesResponse, error) {
	series, err := uc.series.DailySeries(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyMovementDTO, 0, len(series))
	for _, d := range series {
		out = append(out, dto.DailyMovementDTO{
			Date:       d.Date.Format(chartDateLayout),
			Label:      d.Date.Format(chartLabelLayout),
			Inbound:    d.Inbound,
			Outbound:   d.Outbound,
			Adjustment: d.Adjustment,
		})
	}
	return &dto.DailySeriesResponse{Days: days, Series: out}, nil
}

// FormatSignedQuantity "+N" para entradas, "-N" para salidas; ajustes muestran su propio signo.
func FormatSignedQuantity(movementType string, quantity int64) string {
	switch movementType {
	case entity.MovementTypeInbound:
		return "+" + strconv.FormatInt(quantity, 10)
	case entity.MovementTypeOutbound:
		return "-" + strconv.FormatInt(quantity, 10)
	default:
		if quantity >= 0 {
			return "+" + strconv.FormatInt(quantity, 10)
		}
		return strconv.FormatInt(quantity, 10)
	}
}
