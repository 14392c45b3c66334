package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetByIDForShare como GetByID, pero dentro de una tx bloquea la fila frente a cambios de estado
	// hasta el commit.
	GetByIDForShare(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Deactivate marca el producto como INACTIVE. Nunca borra la fila.
	Deactivate(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter entity.ProductFilter) (int, error)
	// ListActive es el directorio que consume el motor de stock.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
