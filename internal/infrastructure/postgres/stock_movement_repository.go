package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT;
// la tabla rechaza UPDATE y DELETE vía trigger.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

var movementColumns = []string{
	"m.id",
	"m.product_id::text AS product_id",
	"m.occurred_at",
	"m.type",
	"m.quantity",
	"m.source",
	"m.notes",
	"m.created_by",
	"COALESCE(p.sku, '') AS product_sku",
	"COALESCE(p.name, '') AS product_name",
}

type movementRow struct {
	ID          int64     `db:"id"`
	ProductID   string    `db:"product_id"`
	OccurredAt  time.Time `db:"occurred_at"`
	Type        string    `db:"type"`
	Quantity    int64     `db:"quantity"`
	Source      string    `db:"source"`
	Notes       string    `db:"notes"`
	CreatedBy   string    `db:"created_by"`
	ProductSKU  string    `db:"product_sku"`
	ProductName string    `db:"product_name"`
}

func (row movementRow) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:          row.ID,
		ProductID:   row.ProductID,
		OccurredAt:  row.OccurredAt,
		Type:        row.Type,
		Quantity:    row.Quantity,
		Source:      row.Source,
		Notes:       row.Notes,
		CreatedBy:   row.CreatedBy,
		ProductSKU:  row.ProductSKU,
		ProductName: row.ProductName,
	}
}

func selectMovements() squirrel.SelectBuilder {
	return psql.Select(movementColumns...).
		From("stock_movements m").
		LeftJoin("products p ON p.id = m.product_id")
}

// Append inserta el movimiento; el ID lo asigna la secuencia (BIGSERIAL).
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (product_id, occurred_at, type, quantity, source, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		m.ProductID, m.OccurredAt, m.Type, m.Quantity, m.Source, m.Notes, m.CreatedBy,
	).Scan(&m.ID)
	if err != nil {
		return domain.DataAccess("insert stock movement", err)
	}
	return nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return []*entity.StockMovement{}, nil
	}
	q := selectMovements().
		Where(squirrel.Eq{"m.product_id": productID}).
		OrderBy("m.occurred_at DESC", "m.id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.selectMany(ctx, "list movements by product", q)
}

func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	q := selectMovements().OrderBy("m.occurred_at DESC", "m.id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.selectMany(ctx, "list recent movements", q)
}

func (r *StockMovementRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error) {
	q := selectMovements().
		Where(squirrel.GtOrEq{"m.occurred_at": from}).
		Where(squirrel.Lt{"m.occurred_at": to}).
		OrderBy("m.occurred_at", "m.id")
	return r.selectMany(ctx, "list movements between", q)
}

// DailyTotals agrega por día local y tipo en la base; el volumen transferido es a lo sumo días x tipos.
func (r *StockMovementRepo) DailyTotals(ctx context.Context, from, to time.Time, loc *time.Location) ([]entity.DailyMovement, error) {
	if loc == nil {
		loc = time.UTC
	}
	sql, args, err := dailyTotalsQuery(from, to, loc).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily totals: %w", err)
	}
	var rows []struct {
		Day      time.Time `db:"day"`
		Type     string    `db:"type"`
		Quantity int64     `db:"quantity"`
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, domain.DataAccess("daily totals", err)
	}

	series := make([]entity.DailyMovement, 0, len(rows))
	for _, row := range rows {
		// pgx entrega DATE como medianoche UTC; se reinterpreta en loc.
		y, m, d := row.Day.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)
		if n := len(series); n == 0 || !series[n-1].Date.Equal(day) {
			series = append(series, entity.DailyMovement{Date: day})
		}
		series[len(series)-1].Add(row.Type, row.Quantity)
	}
	return series, nil
}

// dailyTotalsQuery agrupa por (occurred_at AT TIME ZONE tz)::date. time.Local no tiene nombre IANA
// utilizable, así que se desplaza por su offset vigente en from.
func dailyTotalsQuery(from, to time.Time, loc *time.Location) squirrel.SelectBuilder {
	day := squirrel.Expr("(occurred_at AT TIME ZONE ?)::date AS day", loc.String())
	if loc == time.Local || loc.String() == "Local" {
		_, offset := from.In(loc).Zone()
		day = squirrel.Expr("((occurred_at AT TIME ZONE 'UTC') + make_interval(secs => ?))::date AS day", offset)
	}
	return psql.Select().
		Column(day).
		Columns("type", "SUM(quantity)::bigint AS quantity").
		From("stock_movements").
		Where(squirrel.GtOrEq{"occurred_at": from}).
		Where(squirrel.Lt{"occurred_at": to}).
		GroupBy("1", "2").
		OrderBy("1", "2")
}

// TotalsByProduct una sola consulta agregada. El signo por tipo se aplica en Go.
func (r *StockMovementRepo) TotalsByProduct(ctx context.Context, productIDs []string) ([]entity.MovementTotal, error) {
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []entity.MovementTotal{}, nil
	}
	sql, args, err := psql.Select("product_id::text AS product_id", "type", "SUM(quantity)::bigint AS quantity").
		From("stock_movements").
		Where(squirrel.Eq{"product_id": ids}).
		GroupBy("product_id", "type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build totals by product: %w", err)
	}
	var rows []struct {
		ProductID string `db:"product_id"`
		Type      string `db:"type"`
		Quantity  int64  `db:"quantity"`
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, domain.DataAccess("totals by product", err)
	}
	out := make([]entity.MovementTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.MovementTotal{ProductID: row.ProductID, Type: row.Type, Quantity: row.Quantity})
	}
	return out, nil
}

func (r *StockMovementRepo) selectMany(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*entity.StockMovement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, domain.DataAccess(op, err)
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
