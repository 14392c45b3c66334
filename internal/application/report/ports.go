package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// StockReportLine una fila del reporte de stock.
type StockReportLine struct {
	SKU          string
	Name         string
	Category     string
	Unit         string
	CurrentStock int64
	MinStock     int64
	Price        decimal.Decimal
	Value        decimal.Decimal // Price * CurrentStock
	BelowMinimum bool
}

// StockReport datos del reporte de stock valorizado de productos activos.
type StockReport struct {
	Title        string
	GeneratedAt  time.Time
	Lines        []StockReportLine
	TotalStock   int64
	TotalValue   decimal.Decimal
	BelowMinimum int
}

// MovementsWorkbook datos de la planilla de movimientos de una ventana de días.
type MovementsWorkbook struct {
	GeneratedAt time.Time
	Days        int
	From        time.Time
	To          time.Time // exclusivo
	Series      []entity.DailyMovement
	Movements   []*entity.StockMovement
}

// StockReportRenderer genera el documento PDF del reporte de stock.
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, r *StockReport) ([]byte, error)
}

// MovementsWorkbookRenderer genera la planilla XLSX de movimientos.
type MovementsWorkbookRenderer interface {
	RenderMovementsWorkbook(ctx context.Context, wb *MovementsWorkbook) ([]byte, error)
}
