package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockpro-api/internal/application/report"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/xlsx"
)

func TestRenderMovementsWorkbook(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	wb := &report.MovementsWorkbook{
		GeneratedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		Days:        7,
		Series:      []entity.DailyMovement{{Date: day, Inbound: 100, Outbound: 30, Adjustment: -5}},
		Movements: []*entity.StockMovement{
			{ID: 1, ProductSKU: "A-1", ProductName: "Arroz", Type: entity.MovementTypeInbound, Quantity: 100, OccurredAt: day.Add(9 * time.Hour), Source: "compra"},
		},
	}

	b, err := xlsx.NewExcelizeWorkbookGenerator().RenderMovementsWorkbook(context.Background(), wb)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	daily, err := f.GetRows(xlsx.SheetDaily)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, []string{"2026-03-09", "100", "30", "-5"}, daily[1])

	moves, err := f.GetRows(xlsx.SheetMovements)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "A-1", moves[1][2])
	assert.Equal(t, "2026-03-09 09:00", moves[1][1])
}
