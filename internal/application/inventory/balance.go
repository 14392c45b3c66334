package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// BalanceCalculator deriva saldos del libro. El saldo nunca se guarda: siempre se recalcula.
// Las fallas de lectura se propagan (nunca se reporta 0 por error).
type BalanceCalculator struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewBalanceCalculator construye el calculador.
func NewBalanceCalculator(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *BalanceCalculator {
	return &BalanceCalculator{productRepo: productRepo, movRepo: movRepo}
}

var (
	_ StockReader       = (*BalanceCalculator)(nil)
	_ ActiveStockSource = (*BalanceCalculator)(nil)
)

// CurrentStock saldo de un producto. ErrNotFound si el producto no existe.
func (b *BalanceCalculator) CurrentStock(ctx context.Context, productID string) (int64, error) {
	product, err := b.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	balances, err := b.CurrentStockBatch(ctx, []string{productID})
	if err != nil {
		return 0, err
	}
	return balances[productID], nil
}

// CurrentStockBatch saldos de varios productos en una sola lectura agregada.
// Cada id pedido aparece en el resultado; ids sin movimientos (o desconocidos) valen 0.
func (b *BalanceCalculator) CurrentStockBatch(ctx context.Context, productIDs []string) (map[string]int64, error) {
	ids := uniqueIDs(productIDs)
	if len(ids) == 0 {
		return map[string]int64{}, nil
	}
	totals, err := b.movRepo.TotalsByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}
	return inventory.BalancesFromTotals(ids, totals), nil
}

// ActiveBalances productos ACTIVE con su saldo.
func (b *BalanceCalculator) ActiveBalances(ctx context.Context) ([]*entity.Product, map[string]int64, error) {
	products, err := b.productRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	balances, err := b.CurrentStockBatch(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return products, balances, nil
}

// FleetTotal suma de saldos de todos los productos activos.
func (b *BalanceCalculator) FleetTotal(ctx context.Context) (int64, error) {
	_, balances, err := b.ActiveBalances(ctx)
	if err != nil {
		return 0, err
	}
	return SumBalances(balances), nil
}

// SumBalances total de un mapa de saldos.
func SumBalances(balances map[string]int64) int64 {
	var total int64
	for _, v := range balances {
		total += v
	}
	return total
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
