package inventory

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}

// StockReader saldos derivados del libro de movimientos.
type StockReader interface {
	CurrentStock(ctx context.Context, productID string) (int64, error)
	CurrentStockBatch(ctx context.Context, productIDs []string) (map[string]int64, error)
}

// ActiveStockSource directorio de productos activos con sus saldos, leído en una sola pasada.
type ActiveStockSource interface {
	ActiveBalances(ctx context.Context) ([]*entity.Product, map[string]int64, error)
}
