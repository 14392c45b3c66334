// Package xlsx implementa la planilla de movimientos con excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockpro-api/internal/application/report"
)

// Hojas de la planilla.
const (
	SheetDaily     = "Resumen diario"
	SheetMovements = "Movimientos"
)

var _ report.MovementsWorkbookRenderer = (*ExcelizeWorkbookGenerator)(nil)

// ExcelizeWorkbookGenerator implementa report.MovementsWorkbookRenderer.
type ExcelizeWorkbookGenerator struct{}

// NewExcelizeWorkbookGenerator construye el generador.
func NewExcelizeWorkbookGenerator() *ExcelizeWorkbookGenerator { return &ExcelizeWorkbookGenerator{} }

// RenderMovementsWorkbook genera un .xlsx con dos hojas: serie diaria y detalle de movimientos.
func (g *ExcelizeWorkbookGenerator) RenderMovementsWorkbook(_ context.Context, wb *report.MovementsWorkbook) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetDaily); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	daily := [][]interface{}{{"Fecha", "Entradas", "Salidas", "Ajustes"}}
	for _, d := range wb.Series {
		daily = append(daily, []interface{}{d.Date.Format("2006-01-02"), d.Inbound, d.Outbound, d.Adjustment})
	}
	if err := writeRows(f, SheetDaily, daily); err != nil {
		return nil, err
	}

	loc := wb.GeneratedAt.Location()
	moves := [][]interface{}{{"ID", "Fecha", "SKU", "Producto", "Tipo", "Cantidad", "Origen", "Notas", "Usuario"}}
	for _, m := range wb.Movements {
		moves = append(moves, []interface{}{
			m.ID,
			m.OccurredAt.In(loc).Format("2006-01-02 15:04"),
			m.ProductSKU,
			m.ProductName,
			m.Type,
			m.Quantity,
			m.Source,
			m.Notes,
			m.CreatedBy,
		})
	}
	if err := writeRows(f, SheetMovements, moves); err != nil {
		return nil, err
	}

	for _, sheet := range []string{SheetDaily, SheetMovements} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		r := r
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
