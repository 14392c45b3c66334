package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/application/report"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockpro-api/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/stockpro-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/stockpro-api/internal/interfaces/http"
	"github.com/jhoicas/stockpro-api/pkg/clock"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// buildTestApp arma la API completa sobre el almacenamiento en memoria.
// movRepo != nil reemplaza el libro que leen las vistas del dashboard.
func buildTestApp(t *testing.T, movRepo repository.StockMovementRepository) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	clk := clock.NewFixed(testNow)
	log := logger.Nop()
	tx := memory.NewTxRunner(s)
	if movRepo == nil {
		movRepo = s.Movements()
	}

	balances := inventory.NewBalanceCalculator(s.Products(), s.Movements())
	monitor := inventory.NewThresholdMonitor(balances, log)
	series := appanalytics.NewPeriodAggregator(movRepo, clk, 365, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:          "stockpro-test",
		ProductUC:        usecase.NewProductUseCase(s.Products(), s.Categories(), balances, tx, clk),
		CategoryUC:       usecase.NewCategoryUseCase(s.Categories(), tx, clk),
		RegisterMovement: inventory.NewRegisterMovementUseCase(tx, clk),
		Movements:        inventory.NewMovementQueryUseCase(s.Products(), s.Movements()),
		Balances:         balances,
		DashboardUC: appanalytics.NewDashboardUseCase(balances, monitor, series, movRepo, clk,
			appanalytics.DashboardDefaults{AlertLimit: 10, RecentLimit: 10, ChartDays: 30}, log),
		ReportUC: report.NewReportUseCase(balances, s.Movements(),
			infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewExcelizeWorkbookGenerator(), clk, 365),
	})
	return app
}

// doJSON lanza la petición y devuelve la respuesta; body nil = sin cuerpo.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, sku, name string, minStock int64) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"sku": sku, "name": name, "min_stock": minStock, "price": "1500",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func postMovement(t *testing.T, app *fiber.App, productID, typ string, qty int64) *http.Response {
	t.Helper()
	return doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": productID, "type": typ, "quantity": qty,
	})
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

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "stockpro-test", body["service"])
}

func TestMovimientos_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "ARR-01", "Arroz", 70)

	for _, m := range []struct {
		typ string
		qty int64
	}{{"INBOUND", 100}, {"OUTBOUND", 30}, {"ADJUSTMENT", -5}} {
		resp := postMovement(t, app, p.ID, m.typ, m.qty)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	stock := decode[dto.StockResponse](t, doJSON(t, app, http.MethodGet, "/api/products/"+p.ID+"/stock", nil))
	assert.Equal(t, int64(65), stock.CurrentStock)

	got := decode[dto.ProductResponse](t, doJSON(t, app, http.MethodGet, "/api/products/"+p.ID, nil))
	assert.Equal(t, int64(65), got.CurrentStock)
	assert.True(t, got.BelowMinimum)

	history := decode[[]dto.MovementResponse](t, doJSON(t, app, http.MethodGet, "/api/products/"+p.ID+"/movements?limit=2", nil))
	require.Len(t, history, 2)
	assert.Equal(t, "ADJUSTMENT", history[0].Type)
	assert.Equal(t, "ARR-01", history[0].ProductSKU)
}

func TestMovimientos_ActorDesdeCabecera(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "A", "A", 0)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements",
		map[string]any{"product_id": p.ID, "type": "INBOUND", "quantity": 1},
		apphttp.ActorHeader, "bodega-1")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "bodega-1", mov.CreatedBy)
	assert.Equal(t, inventory.DefaultSource, mov.Source)
}

func TestMovimientos_Errores(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "A", "A", 0)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{"product_id": p.ID, "type": "INBOUND"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, "quantity")

	resp = postMovement(t, app, p.ID, "OUTBOUND", -3)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postMovement(t, app, "00000000-0000-0000-0000-000000000000", "INBOUND", 1)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+p.ID, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = postMovement(t, app, p.ID, "INBOUND", 1)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/movements", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, raw.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)
}

func TestMovimientos_TipoSinDistinguirMayusculas(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "A", "A", 0)

	resp := postMovement(t, app, p.ID, "inbound", 4)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "INBOUND", decode[dto.MovementResponse](t, resp).Type)

	resp = postMovement(t, app, p.ID, " Outbound ", 1)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "OUTBOUND", decode[dto.MovementResponse](t, resp).Type)

	resp = postMovement(t, app, p.ID, "TRANSFER", 1)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, "type")

	stock := decode[dto.StockResponse](t, doJSON(t, app, http.MethodGet, "/api/products/"+p.ID+"/stock", nil))
	assert.Equal(t, int64(3), stock.CurrentStock)
}

func TestStockBatch(t *testing.T) {
	app := buildTestApp(t, nil)
	a := createProduct(t, app, "A", "A", 0)
	b := createProduct(t, app, "B", "B", 0)
	require.Equal(t, fiber.StatusCreated, postMovement(t, app, a.ID, "INBOUND", 8).StatusCode)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/stock/batch", map[string]any{"product_ids": []string{a.ID, b.ID}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.BatchStockResponse](t, resp)
	assert.Equal(t, map[string]int64{a.ID: 8, b.ID: 0}, out.Stocks)

	resp = doJSON(t, app, http.MethodPost, "/api/inventory/stock/batch", map[string]any{"product_ids": []string{"no-uuid"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProductos_SKUDuplicadoYListado(t *testing.T) {
	app := buildTestApp(t, nil)
	createProduct(t, app, "CAF-01", "Café", 0)
	createProduct(t, app, "AZU-01", "Azúcar", 0)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "CAF-01", "name": "Otro"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	list := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products?search=cafe", nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "CAF-01", list.Items[0].SKU)
	assert.Equal(t, 1, list.Page.Total)

	resp = doJSON(t, app, http.MethodGet, "/api/products?limit=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "LEN-01", "name": "Lenteja", "status": "inactive"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "INACTIVE", decode[dto.ProductResponse](t, resp).Status)

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "LEN-02", "name": "Lenteja", "status": "archived"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "status")
}

func TestCategorias_NoSeBorraEnUso(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Granos"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "A", "name": "Arroz", "category_id": cat.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/categories/"+cat.ID, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "name")
}

func TestDashboard_Vistas(t *testing.T) {
	app := buildTestApp(t, nil)
	a := createProduct(t, app, "A", "Arroz", 70)
	b := createProduct(t, app, "B", "Frijol", 10)
	require.Equal(t, fiber.StatusCreated, postMovement(t, app, a.ID, "INBOUND", 65).StatusCode)
	require.Equal(t, fiber.StatusCreated, postMovement(t, app, b.ID, "INBOUND", 50).StatusCode)

	summary := decode[dto.DashboardSummaryDTO](t, doJSON(t, app, http.MethodGet, "/api/dashboard/summary", nil))
	assert.Equal(t, dto.DashboardSummaryDTO{TotalProducts: 2, TotalStock: 115, BelowMinimum: 1}, summary)

	alerts := decode[struct {
		Total  int                 `json:"total"`
		Alerts []dto.StockAlertDTO `json:"alerts"`
	}](t, doJSON(t, app, http.MethodGet, "/api/dashboard/alerts", nil))
	require.Equal(t, 1, alerts.Total)
	assert.Equal(t, a.ID, alerts.Alerts[0].ProductID)

	recent := decode[[]dto.RecentMovementDTO](t, doJSON(t, app, http.MethodGet, "/api/dashboard/movements?limit=1", nil))
	require.Len(t, recent, 1)
	assert.Equal(t, "+50", recent[0].FormattedQuantity)
	assert.Equal(t, "15/03/2024 10:30", recent[0].FormattedDate)

	chart := decode[dto.DailySeriesResponse](t, doJSON(t, app, http.MethodGet, "/api/dashboard/chart?days=7", nil))
	require.Len(t, chart.Series, 1)
	assert.Equal(t, int64(115), chart.Series[0].Inbound)

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/alerts?limit=0", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/chart?days=0", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboard_DegradaSinError(t *testing.T) {
	app := buildTestApp(t, brokenLedger{})

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/movements", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.RecentMovementDTO](t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/chart", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.DailySeriesResponse](t, resp).Series)
}

func TestReportes_Descargas(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "A", "Arroz", 5)
	require.Equal(t, fiber.StatusCreated, postMovement(t, app, p.ID, "INBOUND", 3).StatusCode)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/stock.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock-20240315.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = doJSON(t, app, http.MethodGet, "/api/reports/movements.xlsx?days=7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimientos-7d-20240315.xlsx")

	resp = doJSON(t, app, http.MethodGet, "/api/reports/movements.xlsx?days=9999", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
