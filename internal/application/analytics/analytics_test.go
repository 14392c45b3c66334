package analytics_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockpro-api/pkg/clock"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

var (
	bogota  = time.FixedZone("COT", -5*3600)
	testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, bogota)
)

type fixture struct {
	store     *memory.Store
	clock     *clock.Fixed
	register  *inventory.RegisterMovementUseCase
	dashboard *appanalytics.DashboardUseCase
	series    *appanalytics.PeriodAggregator
}

func newFixture(t *testing.T, movRepo repository.StockMovementRepository) *fixture {
	t.Helper()
	s := memory.NewStore()
	clk := clock.NewFixed(testNow)
	if movRepo == nil {
		movRepo = s.Movements()
	}
	balances := inventory.NewBalanceCalculator(s.Products(), s.Movements())
	monitor := inventory.NewThresholdMonitor(balances, logger.Nop())
	series := appanalytics.NewPeriodAggregator(movRepo, clk, 365, logger.Nop())
	return &fixture{
		store:    s,
		clock:    clk,
		register: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(s), clk),
		series:   series,
		dashboard: appanalytics.NewDashboardUseCase(balances, monitor, series, movRepo, clk,
			appanalytics.DashboardDefaults{AlertLimit: 10, RecentLimit: 10, ChartDays: 30}, logger.Nop()),
	}
}

func (f *fixture) addProduct(t *testing.T, id, name string, minStock int64) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: name, Unit: entity.DefaultUnit,
		MinStock: minStock, Status: entity.ProductStatusActive,
	}))
}

func (f *fixture) moveAt(t *testing.T, productID, typ string, qty int64, at time.Time, user string) {
	t.Helper()
	_, err := f.register.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: productID, Type: typ, Quantity: qty, OccurredAt: at, UserID: user,
	})
	require.NoError(t, err)
}

// brokenLedger falla en toda lectura del libro.
type brokenLedger struct {
	repository.StockMovementRepository
}

func (brokenLedger) ListRecent(context.Context, int) ([]*entity.StockMovement, error) {
	return nil, domain.DataAccess("movimientos recientes", errors.New("timeout"))
}

func (brokenLedger) DailyTotals(context.Context, time.Time, time.Time, *time.Location) ([]entity.DailyMovement, error) {
	return nil, domain.DataAccess("totales diarios", errors.New("timeout"))
}

func TestDailySeries_VentanaSinMovimientos(t *testing.T) {
	f := newFixture(t, nil)
	f.addProduct(t, "A", "Arroz", 0)
	f.moveAt(t, "A", entity.MovementTypeInbound, 10, testNow.AddDate(0, 0, -5), "")

	series, err := f.series.DailySeries(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestDailySeries_AgrupaPorDiaLocal(t *testing.T) {
	f := newFixture(t, nil)
	f.addProduct(t, "A", "Arroz", 0)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, bogota)

	f.moveAt(t, "A", entity.MovementTypeInbound, 10, today.Add(8*time.Hour), "")
	f.moveAt(t, "A", entity.MovementTypeOutbound, 4, today.Add(9*time.Hour), "")
	f.moveAt(t, "A", entity.MovementTypeAdjustment, -2, today.Add(-30*time.Minute), "")
	// borde inferior incluido; un segundo antes y mañana quedan fuera
	f.moveAt(t, "A", entity.MovementTypeInbound, 1, today.AddDate(0, 0, -2), "")
	f.moveAt(t, "A", entity.MovementTypeInbound, 99, today.AddDate(0, 0, -2).Add(-time.Second), "")
	f.moveAt(t, "A", entity.MovementTypeInbound, 50, today.AddDate(0, 0, 1), "")

	series, err := f.series.DailySeries(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.True(t, series[0].Date.Equal(today.AddDate(0, 0, -2)))
	assert.Equal(t, int64(1), series[0].Inbound)

	assert.True(t, series[1].Date.Equal(today.AddDate(0, 0, -1)))
	assert.Equal(t, int64(-2), series[1].Adjustment)

	assert.True(t, series[2].Date.Equal(today))
	assert.Equal(t, int64(10), series[2].Inbound)
	assert.Equal(t, int64(4), series[2].Outbound)
}

func TestDailySeries_VentanaInvalida(t *testing.T) {
	f := newFixture(t, nil)
	for _, days := range []int{0, -1, 366} {
		_, err := f.series.DailySeries(context.Background(), days)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "days=%d", days)
	}
}

func TestDailySeries_DegradaAVacio(t *testing.T) {
	f := newFixture(t, brokenLedger{})
	series, err := f.series.DailySeries(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

// ledgerCalls cuenta qué lecturas del libro se usan.
type ledgerCalls struct {
	repository.StockMovementRepository
	between int
	daily   int
	loc     *time.Location
}

func (l *ledgerCalls) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error) {
	l.between++
	return l.StockMovementRepository.ListBetween(ctx, from, to)
}

func (l *ledgerCalls) DailyTotals(ctx context.Context, from, to time.Time, loc *time.Location) ([]entity.DailyMovement, error) {
	l.daily++
	l.loc = loc
	return l.StockMovementRepository.DailyTotals(ctx, from, to, loc)
}

func TestDailySeries_AgregaEnElAlmacenamiento(t *testing.T) {
	f := newFixture(t, nil)
	f.addProduct(t, "A", "Arroz", 0)
	f.moveAt(t, "A", entity.MovementTypeInbound, 7, testNow.Add(-time.Hour), "")

	ledger := &ledgerCalls{StockMovementRepository: f.store.Movements()}
	agg := appanalytics.NewPeriodAggregator(ledger, f.clock, 365, logger.Nop())

	series, err := agg.DailySeries(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, int64(7), series[0].Inbound)

	assert.Equal(t, 1, ledger.daily)
	assert.Zero(t, ledger.between, "la serie no debe cargar movimientos individuales")
	assert.Equal(t, bogota, ledger.loc)
}

func TestDashboard_Resumen(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.addProduct(t, "A", "Arroz", 70)
	f.addProduct(t, "B", "Frijol", 10)
	f.addProduct(t, "C", "Lenteja", 0)
	f.moveAt(t, "A", entity.MovementTypeInbound, 65, testNow, "")
	f.moveAt(t, "B", entity.MovementTypeInbound, 50, testNow, "")
	f.moveAt(t, "C", entity.MovementTypeInbound, 8, testNow, "")
	require.NoError(t, f.store.Products().Deactivate(ctx, "C", testNow))

	summary, err := f.dashboard.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, int64(115), summary.TotalStock)
	assert.Equal(t, 1, summary.BelowMinimum)

	alerts, err := f.dashboard.GetAlerts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "SKU-A", alerts[0].SKU)
	assert.Equal(t, int64(70), alerts[0].Minimum)
}

// countingStock cuenta las lecturas de saldos; err != nil simula la caída del almacenamiento.
type countingStock struct {
	inner inventory.ActiveStockSource
	calls atomic.Int32
	err   error
}

func (c *countingStock) ActiveBalances(ctx context.Context) ([]*entity.Product, map[string]int64, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, nil, c.err
	}
	return c.inner.ActiveBalances(ctx)
}

func TestDashboard_ResumenUnaSolaLectura(t *testing.T) {
	f := newFixture(t, nil)
	f.addProduct(t, "A", "Arroz", 70)
	f.addProduct(t, "B", "Frijol", 10)
	f.moveAt(t, "A", entity.MovementTypeInbound, 65, testNow, "")
	f.moveAt(t, "B", entity.MovementTypeInbound, 50, testNow, "")

	stock := &countingStock{inner: inventory.NewBalanceCalculator(f.store.Products(), f.store.Movements())}
	uc := appanalytics.NewDashboardUseCase(stock, inventory.NewThresholdMonitor(stock, logger.Nop()), f.series,
		f.store.Movements(), f.clock, appanalytics.DashboardDefaults{AlertLimit: 10, RecentLimit: 10, ChartDays: 30}, logger.Nop())

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, int64(115), summary.TotalStock)
	assert.Equal(t, 1, summary.BelowMinimum)
	assert.Equal(t, int32(1), stock.calls.Load())
}

func TestDashboard_ResumenPropagaFalla(t *testing.T) {
	f := newFixture(t, nil)
	stock := &countingStock{err: domain.DataAccess("listar activos", errors.New("conexión rechazada"))}
	uc := appanalytics.NewDashboardUseCase(stock, inventory.NewThresholdMonitor(stock, logger.Nop()), f.series,
		f.store.Movements(), f.clock, appanalytics.DashboardDefaults{AlertLimit: 10, RecentLimit: 10, ChartDays: 30}, logger.Nop())

	summary, err := uc.GetSummary(context.Background())
	assert.True(t, errors.Is(err, domain.ErrDataAccess))
	assert.Nil(t, summary)
	assert.Equal(t, int32(1), stock.calls.Load())
}

func TestDashboard_MovimientosRecientesFormateados(t *testing.T) {
	f := newFixture(t, nil)
	f.addProduct(t, "A", "Arroz", 0)
	f.moveAt(t, "A", entity.MovementTypeInbound, 10, time.Date(2024, 3, 15, 9, 5, 0, 0, bogota), "ana")
	f.moveAt(t, "A", entity.MovementTypeOutbound, 4, time.Date(2024, 3, 15, 9, 10, 0, 0, bogota), "")
	f.moveAt(t, "A", entity.MovementTypeAdjustment, -2, time.Date(2024, 3, 15, 14, 20, 0, 0, time.UTC), "")

	list, err := f.dashboard.GetRecentMovements(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "-2", list[0].FormattedQuantity)
	assert.Equal(t, "15/03/2024 09:20", list[0].FormattedDate, "se muestra en la zona del reloj")
	assert.Equal(t, inventory.DefaultSource, list[0].Actor)

	assert.Equal(t, "-4", list[1].FormattedQuantity)
	assert.Equal(t, "+10", list[2].FormattedQuantity)
	assert.Equal(t, "ana", list[2].Actor)
	assert.Equal(t, "Arroz", list[2].ProductName)
}

func TestDashboard_MovimientosRecientesDegradan(t *testing.T) {
	f := newFixture(t, brokenLedger{})
	list, err := f.dashboard.GetRecentMovements(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.dashboard.GetRecentMovements(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDashboard_Grafico(t *testing.T) {
	f := newFixture(t, nil)
	f.addProduct(t, "A", "Arroz", 0)
	f.moveAt(t, "A", entity.MovementTypeInbound, 7, time.Date(2024, 3, 14, 12, 0, 0, 0, bogota), "")

	chart, err := f.dashboard.GetChart(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, chart.Days)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "2024-03-14", chart.Series[0].Date)
	assert.Equal(t, "14/03", chart.Series[0].Label)
	assert.Equal(t, int64(7), chart.Series[0].Inbound)
}

func TestFormatSignedQuantity(t *testing.T) {
	assert.Equal(t, "+5", appanalytics.FormatSignedQuantity(entity.MovementTypeInbound, 5))
	assert.Equal(t, "-5", appanalytics.FormatSignedQuantity(entity.MovementTypeOutbound, 5))
	assert.Equal(t, "+3", appanalytics.FormatSignedQuantity(entity.MovementTypeAdjustment, 3))
	assert.Equal(t, "-3", appanalytics.FormatSignedQuantity(entity.MovementTypeAdjustment, -3))
	assert.Equal(t, "+0", appanalytics.FormatSignedQuantity(entity.MovementTypeAdjustment, 0))
}
