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
	domaininv "github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/clock"
)

// Paginación del listado de productos.
const (
	DefaultProductPage = 20
	MaxProductPage     = 100
)

// ProductUseCase casos de uso CRUD para productos. El stock nunca se edita aquí: se deriva del libro.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	stock        inventory.StockReader
	txRunner     inventory.TxRunner
	clock        clock.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	stock inventory.StockReader,
	txRunner inventory.TxRunner,
	clk clock.Clock,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, stock: stock, txRunner: txRunner, clock: clk}
}

// Create crea un producto. Unidad por defecto "un"; estado ACTIVE salvo que Status o Active digan lo contrario.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	if in.MinStock < 0 {
		return nil, domain.NewValidationError("min_stock", "no puede ser negativo")
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("sku %s: %w", sku, domain.ErrDuplicate)
	}

	categoryID, err := uc.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	status := entity.ProductStatusActive
	switch {
	case in.Status != "":
		status = strings.ToUpper(strings.TrimSpace(in.Status))
	case in.Active != nil && !*in.Active:
		status = entity.ProductStatusInactive
	}
	if status != entity.ProductStatusActive && status != entity.ProductStatusInactive {
		return nil, domain.NewValidationError("status", "debe ser ACTIVE o INACTIVE")
	}

	now := uc.clock.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        name,
		CategoryID:  categoryID,
		Unit:        unit,
		Price:       in.Price,
		MinStock:    in.MinStock,
		Status:      status,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, 0), nil
}

// GetByID obtiene un producto con su stock actual.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stock.CurrentStock(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// Update actualiza atributos editables. SKU y estado no se modifican aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede quedar vacío")
		}
		product.Name = name
	}
	if in.CategoryID != nil {
		categoryID, err := uc.resolveCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
		if product.Unit == "" {
			product.Unit = entity.DefaultUnit
		}
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.NewValidationError("min_stock", "no puede ser negativo")
		}
		product.MinStock = *in.MinStock
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	product.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	stock, err := uc.stock.CurrentStock(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// List lista productos con filtros y paginación; el stock de la página se calcula en un solo lote.
func (uc *ProductUseCase) List(ctx context.Context, filter entity.ProductFilter) (*dto.ProductListResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	switch filter.Status {
	case "", entity.ProductStatusActive, entity.ProductStatusInactive:
	default:
		return nil, domain.NewValidationError("status", "debe ser ACTIVE o INACTIVE")
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultProductPage
	}
	if filter.Limit > MaxProductPage {
		filter.Limit = MaxProductPage
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	balances, err := uc.stock.CurrentStockBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, balances[p.ID]))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Delete borrado lógico: el producto pasa a INACTIVE y su historial se conserva. Idempotente.
// Corre en transacción: no se intercala con un RegisterMovement que ya leyó el producto como ACTIVE.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CategoryRepository,
	) error {
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		if !product.IsActive() {
			return nil
		}
		return productRepo.Deactivate(ctx, id, uc.clock.Now())
	})
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

// resolveCategory nil o "" = sin categoría; si no, debe existir.
func (uc *ProductUseCase) resolveCategory(ctx context.Context, categoryID *string) (*string, error) {
	if categoryID == nil || strings.TrimSpace(*categoryID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*categoryID)
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewValidationError("category_id", "categoría inexistente")
	}
	return &id, nil
}

func toProductResponse(p *entity.Product, stock int64) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Unit:         p.Unit,
		Price:        p.Price,
		MinStock:     p.MinStock,
		CurrentStock: stock,
		BelowMinimum: p.IsActive() && domaininv.IsBelowOrAtMinimum(stock, p.MinStock),
		Status:       p.Status,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

