package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/clock"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	txRunner inventory.TxRunner
	clock    clock.Clock
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, txRunner inventory.TxRunner, clk clock.Clock) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, txRunner: txRunner, clock: clk}
}

// Create crea una categoría. El nombre es único (ErrDuplicate).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	now := uc.clock.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update reemplaza nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	category.Name = name
	category.Description = strings.TrimSpace(in.Description)
	category.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina la categoría si ningún producto (activo o inactivo) la referencia; si no, ErrConflict.
// Conteo y borrado corren en la misma transacción.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
	) error {
		category, err := categoryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
		}
		n, err := productRepo.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("categoría %s usada por %d productos: %w", category.Name, n, domain.ErrConflict)
		}
		return categoryRepo.Delete(ctx, id)
	})
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
