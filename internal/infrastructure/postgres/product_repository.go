package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

var productColumns = []string{
	"p.id::text AS id",
	"p.sku",
	"p.name",
	"p.category_id::text AS category_id",
	"COALESCE(c.name, '') AS category_name",
	"p.unit",
	"p.price",
	"p.min_stock",
	"p.status",
	"p.description",
	"p.created_at",
	"p.updated_at",
}

type productRow struct {
	ID           string          `db:"id"`
	SKU          string          `db:"sku"`
	Name         string          `db:"name"`
	CategoryID   *string         `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Unit         string          `db:"unit"`
	Price        decimal.Decimal `db:"price"`
	MinStock     int64           `db:"min_stock"`
	Status       string          `db:"status"`
	Description  string          `db:"description"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (row productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:           row.ID,
		SKU:          row.SKU,
		Name:         row.Name,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Unit:         row.Unit,
		Price:        row.Price,
		MinStock:     row.MinStock,
		Status:       row.Status,
		Description:  row.Description,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func selectProducts() squirrel.SelectBuilder {
	return psql.Select(productColumns...).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id")
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	sql, args, err := psql.Insert("products").
		Columns("id", "sku", "name", "category_id", "unit", "price", "min_stock", "status", "description", "created_at", "updated_at").
		Values(product.ID, product.SKU, product.Name, product.CategoryID, product.Unit, product.Price,
			product.MinStock, product.Status, product.Description, product.CreatedAt, product.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %s: %w", product.SKU, domain.ErrDuplicate)
		}
		return domain.DataAccess("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe o el id no es un UUID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get product", squirrel.Eq{"p.id": id})
}

// GetByIDForShare lee el producto con FOR SHARE: un Deactivate concurrente espera al commit de la tx.
// Fuera de una transacción el lock se libera al terminar la sentencia.
func (r *ProductRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.fetchOne(ctx, "get product for share", lockProductForShare(id))
}

// lockProductForShare solo bloquea p: el lado nulo del LEFT JOIN no admite FOR SHARE.
func lockProductForShare(id string) squirrel.SelectBuilder {
	return selectProducts().Where(squirrel.Eq{"p.id": id}).Suffix("FOR SHARE OF p")
}

// GetBySKU obtiene un producto por SKU (activo o inactivo).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", squirrel.Eq{"p.sku": sku})
}

func (r *ProductRepo) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*entity.Product, error) {
	return r.fetchOne(ctx, op, selectProducts().Where(where))
}

func (r *ProductRepo) fetchOne(ctx context.Context, op string, q squirrel.SelectBuilder) (*entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var row productRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, domain.DataAccess(op, err)
	}
	return row.toEntity(), nil
}

// Update actualiza los atributos editables. SKU, estado y created_at no se tocan.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	sql, args, err := psql.Update("products").
		Set("name", product.Name).
		Set("category_id", product.CategoryID).
		Set("unit", product.Unit).
		Set("price", product.Price).
		Set("min_stock", product.MinStock).
		Set("description", product.Description).
		Set("updated_at", product.UpdatedAt).
		Where(squirrel.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return domain.DataAccess("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", product.ID, domain.ErrNotFound)
	}
	return nil
}

// Deactivate borrado lógico (status = INACTIVE). Idempotente.
func (r *ProductRepo) Deactivate(ctx context.Context, id string, at time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE products
		SET status = $2,
		    updated_at = CASE WHEN status = $2 THEN updated_at ELSE $3 END
		WHERE id = $1`,
		id, entity.ProductStatusInactive, at,
	)
	if err != nil {
		return domain.DataAccess("deactivate product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista productos ordenados por nombre con filtros y paginación.
func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	q := applyProductFilter(selectProducts(), filter).OrderBy("p.name", "p.id")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return r.selectMany(ctx, "list products", q)
}

// Count total de productos que cumplen el filtro (sin paginación).
func (r *ProductRepo) Count(ctx context.Context, filter entity.ProductFilter) (int, error) {
	sql, args, err := applyProductFilter(psql.Select("COUNT(*)").From("products p"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count products: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, domain.DataAccess("count products", err)
	}
	return n, nil
}

// ListActive todos los productos ACTIVE.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	q := selectProducts().
		Where(squirrel.Eq{"p.status": entity.ProductStatusActive}).
		OrderBy("p.name", "p.id")
	return r.selectMany(ctx, "list active products", q)
}

// CountByCategory productos (activos o no) que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, domain.DataAccess("count products by category", err)
	}
	return n, nil
}

func (r *ProductRepo) selectMany(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, domain.DataAccess(op, err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func applyProductFilter(q squirrel.SelectBuilder, f entity.ProductFilter) squirrel.SelectBuilder {
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"p.status": f.Status})
	}
	if f.CategoryID != "" {
		if _, err := uuid.Parse(f.CategoryID); err != nil {
			return q.Where("FALSE")
		}
		q = q.Where(squirrel.Eq{"p.category_id": f.CategoryID})
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.sku": pattern},
			squirrel.ILike{"p.description": pattern},
		})
	}
	return q
}
