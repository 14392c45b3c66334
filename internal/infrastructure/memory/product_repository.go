package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct {
	s *Store
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: crear producto", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrDuplicate)
	}
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: obtener producto", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.withCategory(p), nil
}

// GetByIDForShare equivale a GetByID: TxRunner ya serializa las transacciones y
// ProductUseCase.Delete desactiva dentro de una.
func (r *ProductRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: obtener producto por sku", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return r.s.withCategory(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: actualizar producto", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[p.ID]
	if !ok {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
	}
	cp := *p
	cp.SKU = current.SKU
	cp.Status = current.Status
	cp.CreatedAt = current.CreatedAt
	cp.CategoryName = ""
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) Deactivate(ctx context.Context, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: desactivar producto", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if p.Status != entity.ProductStatusInactive {
		p.Status = entity.ProductStatusInactive
		p.UpdatedAt = at
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: listar productos", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := r.s.filterProducts(f)
	if f.Offset >= len(matched) {
		return []*entity.Product{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *ProductRepo) Count(ctx context.Context, f entity.ProductFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.DataAccess("memory: contar productos", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.filterProducts(f)), nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	return r.List(ctx, entity.ProductFilter{Status: entity.ProductStatusActive})
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.DataAccess("memory: contar por categoría", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// filterProducts aplica el filtro y ordena por nombre, luego id. Requiere mu tomado.
func (s *Store) filterProducts(f entity.ProductFilter) []*entity.Product {
	search := fold(strings.TrimSpace(f.Search))
	out := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if search != "" &&
			!strings.Contains(fold(p.Name), search) &&
			!strings.Contains(fold(p.SKU), search) &&
			!strings.Contains(fold(p.Description), search) {
			continue
		}
		out = append(out, s.withCategory(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// withCategory copia el producto completando CategoryName. Requiere mu tomado.
func (s *Store) withCategory(p *entity.Product) *entity.Product {
	cp := *p
	if p.CategoryID != nil {
		id := *p.CategoryID
		cp.CategoryID = &id
		if c, ok := s.categories[id]; ok {
			cp.CategoryName = c.Name
		}
	}
	return &cp
}
