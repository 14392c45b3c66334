package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// MaxMovementPage tope de filas por consulta del libro.
const MaxMovementPage = 500

// MovementQueryUseCase consultas de solo lectura sobre el libro.
type MovementQueryUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{productRepo: productRepo, movRepo: movRepo}
}

// ListByProduct historial de un producto, más reciente primero.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return uc.movRepo.ListByProduct(ctx, productID, limit)
}

// ListRecent últimos movimientos de todos los productos.
func (uc *MovementQueryUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return uc.movRepo.ListRecent(ctx, limit)
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxMovementPage {
		return domain.NewValidationError("limit", fmt.Sprintf("debe estar entre 1 y %d", MaxMovementPage))
	}
	return nil
}
