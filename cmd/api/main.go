package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/application/report"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockpro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/stockpro-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stockpro-api/internal/interfaces/http"
	"github.com/jhoicas/stockpro-api/pkg/clock"
	"github.com/jhoicas/stockpro-api/pkg/config"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

// storage repositorios y TxRunner del backend elegido.
type storage struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.StockMovementRepository
	txRunner   inventory.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	clk := clock.System{Loc: loc}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.close()

	balances := inventory.NewBalanceCalculator(store.products, store.movements)
	thresholds := inventory.NewThresholdMonitor(balances, log)
	aggregator := appanalytics.NewPeriodAggregator(store.movements, clk, cfg.Dashboard.MaxWindowDays, log)

	registerMovementUC := inventory.NewRegisterMovementUseCase(store.txRunner, clk)
	movementsUC := inventory.NewMovementQueryUseCase(store.products, store.movements)
	productUC := usecase.NewProductUseCase(store.products, store.categories, balances, store.txRunner, clk)
	categoryUC := usecase.NewCategoryUseCase(store.categories, store.txRunner, clk)
	dashboardUC := appanalytics.NewDashboardUseCase(
		balances, thresholds, aggregator, store.movements, clk,
		appanalytics.DashboardDefaults{
			AlertLimit:  cfg.Dashboard.AlertLimit,
			RecentLimit: cfg.Dashboard.RecentLimit,
			ChartDays:   cfg.Dashboard.ChartDays,
		},
		log,
	)
	reportUC := report.NewReportUseCase(
		balances, store.movements,
		infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewExcelizeWorkbookGenerator(),
		clk, cfg.Dashboard.MaxWindowDays,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:          cfg.App.Name,
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		RegisterMovement: registerMovementUC,
		Movements:        movementsUC,
		Balances:         balances,
		DashboardUC:      dashboardUC,
		ReportUC:         reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el backend configurado. memory no persiste entre reinicios.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		s := memory.NewStore()
		return &storage{
			products:   s.Products(),
			categories: s.Categories(),
			movements:  s.Movements(),
			txRunner:   memory.NewTxRunner(s),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		movements:  postgres.NewStockMovementRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
