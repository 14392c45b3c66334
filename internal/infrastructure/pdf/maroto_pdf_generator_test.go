package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/application/report"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/pdf"
)

func TestRenderStockReport_GeneraPDF(t *testing.T) {
	r := &report.StockReport{
		Title:       "Reporte de stock - Marzo 2026",
		GeneratedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		Lines: []report.StockReportLine{
			{SKU: "A-1", Name: "Arroz", Unit: "un", CurrentStock: 65, MinStock: 10, Price: decimal.NewFromInt(2500), Value: decimal.NewFromInt(162500)},
			{SKU: "B-1", Name: "Frijol", Category: "Granos", Unit: "kg", CurrentStock: 2, MinStock: 5, Price: decimal.NewFromInt(4000), Value: decimal.NewFromInt(8000), BelowMinimum: true},
		},
		TotalStock:   67,
		TotalValue:   decimal.NewFromInt(170500),
		BelowMinimum: 1,
	}

	b, err := pdf.NewMarotoPDFGenerator().RenderStockReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestRenderStockReport_SinLineas(t *testing.T) {
	r := &report.StockReport{Title: "Vacío", GeneratedAt: time.Now(), TotalValue: decimal.Zero}
	b, err := pdf.NewMarotoPDFGenerator().RenderStockReport(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
