package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/clock"
	"github.com/jhoicas/stockpro-api/pkg/metrics"
)

// DefaultSource origen registrado cuando el llamador no informa uno.
const DefaultSource = "manual"

// RegisterMovementUseCase agrega movimientos al libro dentro de una transacción:
// valida, verifica que el producto exista y esté ACTIVE, y persiste antes de retornar.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	clock    clock.Clock
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, clk clock.Clock) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, clock: clk}
}

// MovementInputDTO entrada para registrar un movimiento.
// OccurredAt cero = ahora según el reloj inyectado.
type MovementInputDTO struct {
	ProductID  string
	Type       string
	Quantity   int64
	OccurredAt time.Time
	Source     string
	Notes      string
	UserID     string
}

// RegisterMovement valida y agrega el movimiento. Devuelve la entrada con su ID asignado.
// Errores: ValidationError, ErrNotFound (producto), ErrConflict (producto inactivo), ErrDataAccess.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, error) {
	mov := &entity.StockMovement{
		ProductID:  strings.TrimSpace(input.ProductID),
		Type:       strings.ToUpper(strings.TrimSpace(input.Type)),
		Quantity:   input.Quantity,
		OccurredAt: input.OccurredAt,
		Source:     strings.TrimSpace(input.Source),
		Notes:      strings.TrimSpace(input.Notes),
		CreatedBy:  strings.TrimSpace(input.UserID),
	}
	if err := inventory.ValidateMovement(mov); err != nil {
		return nil, err
	}
	if mov.OccurredAt.IsZero() {
		mov.OccurredAt = uc.clock.Now()
	}
	if mov.Source == "" {
		mov.Source = DefaultSource
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CategoryRepository,
	) error {
		// FOR SHARE: una desactivación concurrente espera a que este Append confirme.
		product, err := productRepo.GetByIDForShare(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", mov.ProductID, domain.ErrNotFound)
		}
		if !product.IsActive() {
			return fmt.Errorf("producto %s inactivo: %w", product.SKU, domain.ErrConflict)
		}
		mov.ProductSKU = product.SKU
		mov.ProductName = product.Name
		return movRepo.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerAppends.WithLabelValues(mov.Type).Inc()
	return mov, nil
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	input := MovementInputDTO{
		ProductID: in.ProductID,
		Type:      in.Type,
		Source:    in.Source,
		Notes:     in.Notes,
		UserID:    in.CreatedBy,
	}
	if in.Quantity == nil {
		return nil, domain.NewValidationError("quantity", "es requerida")
	}
	input.Quantity = *in.Quantity
	if in.OccurredAt != nil {
		input.OccurredAt = *in.OccurredAt
	}
	return uc.RegisterMovement(ctx, input)
}
