package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// StockMovementRepository es el libro de movimientos: solo agrega y consulta.
// No existe operación para editar ni borrar entradas.
type StockMovementRepository interface {
	// Append asigna ID estrictamente creciente y persiste antes de retornar.
	Append(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct y ListRecent ordenan por (occurred_at DESC, id DESC).
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error)
	// ListBetween devuelve los movimientos con from <= occurred_at < to.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error)
	// DailyTotals suma por día calendario (en loc) y tipo sobre [from, to), agregando en el almacenamiento.
	// Solo días con movimientos, en orden ascendente.
	DailyTotals(ctx context.Context, from, to time.Time, loc *time.Location) ([]entity.DailyMovement, error)
	// TotalsByProduct suma cantidades crudas agrupando por producto y tipo, en una sola pasada.
	TotalsByProduct(ctx context.Context, productIDs []string) ([]entity.MovementTotal, error)
}
