package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/application/report"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName          string
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Movements        *inventory.MovementQueryUseCase
	Balances         *inventory.BalanceCalculator
	DashboardUC      *appanalytics.DashboardUseCase
	ReportUC         *report.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api", ActorMiddleware())

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Movements, deps.Balances)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", inventoryHandler.GetStock)
	products.Get("/:id/movements", inventoryHandler.ListByProduct)

	// Inventory
	invGroup := api.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListRecent)
	invGroup.Post("/stock/batch", inventoryHandler.GetStockBatch)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/alerts", dashboardHandler.GetAlerts)
	dashboard.Get("/movements", dashboardHandler.GetRecentMovements)
	dashboard.Get("/chart", dashboardHandler.GetChart)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
	reports.Get("/movements.xlsx", reportHandler.MovementsXLSX)
}
