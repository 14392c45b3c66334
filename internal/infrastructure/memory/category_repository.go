package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// CategoryRepo implementa repository.CategoryRepository en memoria.
type CategoryRepo struct {
	s *Store
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: crear categoría", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkCategoryName(c.ID, c.Name); err != nil {
		return err
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: obtener categoría", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: actualizar categoría", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.categories[c.ID]
	if !ok {
		return fmt.Errorf("categoría %s: %w", c.ID, domain.ErrNotFound)
	}
	if err := r.s.checkCategoryName(c.ID, c.Name); err != nil {
		return err
	}
	cp := *c
	cp.CreatedAt = current.CreatedAt
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: listar categorías", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: eliminar categoría", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.categories, id)
	return nil
}

// checkCategoryName nombre único sin distinguir mayúsculas. Requiere mu tomado.
func (s *Store) checkCategoryName(id, name string) error {
	for _, existing := range s.categories {
		if existing.ID != id && strings.EqualFold(existing.Name, name) {
			return fmt.Errorf("categoría %q: %w", name, domain.ErrDuplicate)
		}
	}
	return nil
}
