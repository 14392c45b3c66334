package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

type categoryRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row categoryRow) toEntity() *entity.Category {
	return &entity.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

const categorySelect = `SELECT id::text AS id, name, description, created_at, updated_at FROM categories`

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("categoría %q: %w", c.Name, domain.ErrDuplicate)
		}
		return domain.DataAccess("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var row categoryRow
	if err := pgxscan.Get(ctx, r.q, &row, categorySelect+` WHERE id = $1`, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, domain.DataAccess("get category", err)
	}
	return row.toEntity(), nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("categoría %q: %w", c.Name, domain.ErrDuplicate)
		}
		return domain.DataAccess("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("categoría %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := pgxscan.Select(ctx, r.q, &rows, categorySelect+` ORDER BY name, id`); err != nil {
		return nil, domain.DataAccess("list categories", err)
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return domain.DataAccess("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
