// Package report arma los datos de los reportes descargables (PDF de stock y
// planilla de movimientos) y delega el render en los adaptadores de infraestructura.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/clock"
)

// ReportUseCase genera los reportes. A diferencia del dashboard, las fallas de lectura se propagan:
// un archivo descargado nunca debe salir vacío por error.
type ReportUseCase struct {
	stock         inventory.ActiveStockSource
	movRepo       repository.StockMovementRepository
	pdf           StockReportRenderer
	xlsx          MovementsWorkbookRenderer
	clock         clock.Clock
	maxWindowDays int
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	stock inventory.ActiveStockSource,
	movRepo repository.StockMovementRepository,
	pdf StockReportRenderer,
	xlsx MovementsWorkbookRenderer,
	clk clock.Clock,
	maxWindowDays int,
) *ReportUseCase {
	return &ReportUseCase{
		stock:         stock,
		movRepo:       movRepo,
		pdf:           pdf,
		xlsx:          xlsx,
		clock:         clk,
		maxWindowDays: maxWindowDays,
	}
}

// BuildStockReport arma el reporte de stock de productos activos, ordenado por nombre.
func (uc *ReportUseCase) BuildStockReport(ctx context.Context) (*StockReport, error) {
	products, balances, err := uc.stock.ActiveBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: saldos activos: %w", err)
	}
	now := uc.clock.Now()

	sorted := make([]*entity.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := strings.ToLower(sorted[i].Name), strings.ToLower(sorted[j].Name)
		if ni != nj {
			return ni < nj
		}
		return sorted[i].SKU < sorted[j].SKU
	})

	r := &StockReport{
		Title:       "Reporte de stock - " + monthLabel(now.Month(), now.Year()),
		GeneratedAt: now,
		Lines:       make([]StockReportLine, 0, len(sorted)),
		TotalValue:  decimal.Zero,
	}
	for _, p := range sorted {
		stock := balances[p.ID]
		value := p.Price.Mul(decimal.NewFromInt(stock))
		below := domaininv.IsBelowOrAtMinimum(stock, p.MinStock)
		r.Lines = append(r.Lines, StockReportLine{
			SKU:          p.SKU,
			Name:         p.Name,
			Category:     p.CategoryName,
			Unit:         p.Unit,
			CurrentStock: stock,
			MinStock:     p.MinStock,
			Price:        p.Price,
			Value:        value,
			BelowMinimum: below,
		})
		r.TotalStock += stock
		r.TotalValue = r.TotalValue.Add(value)
		if below {
			r.BelowMinimum++
		}
	}
	return r, nil
}

// StockPDF genera el PDF del reporte de stock.
// Retorna (pdfBytes, filename, nil) o el error de lectura/render.
func (uc *ReportUseCase) StockPDF(ctx context.Context) ([]byte, string, error) {
	r, err := uc.BuildStockReport(ctx)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.RenderStockReport(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: render pdf: %w", err)
	}
	return b, "stock-" + r.GeneratedAt.Format("20060102") + ".pdf", nil
}

// BuildMovementsWorkbook arma la planilla con la serie diaria y el detalle de la ventana.
func (uc *ReportUseCase) BuildMovementsWorkbook(ctx context.Context, days int) (*MovementsWorkbook, error) {
	if err := domaininv.ValidateWindow(days, uc.maxWindowDays); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	from, to := domaininv.Window(now, days)
	movements, err := uc.movRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: movimientos: %w", err)
	}
	return &MovementsWorkbook{
		GeneratedAt: now,
		Days:        days,
		From:        from,
		To:          to,
		Series:      domaininv.BucketDaily(movements, from, to),
		Movements:   movements,
	}, nil
}

// MovementsXLSX genera la planilla de movimientos de los últimos days días.
func (uc *ReportUseCase) MovementsXLSX(ctx context.Context, days int) ([]byte, string, error) {
	wb, err := uc.BuildMovementsWorkbook(ctx, days)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.RenderMovementsWorkbook(ctx, wb)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: render xlsx: %w", err)
	}
	return b, fmt.Sprintf("movimientos-%dd-%s.xlsx", days, wb.GeneratedAt.Format("20060102")), nil
}
