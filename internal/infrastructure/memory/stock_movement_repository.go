package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// StockMovementRepo libro de movimientos en memoria. Solo agrega.
type StockMovementRepo struct {
	s *Store
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// Append asigna el siguiente ID bajo el lock del store.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	if err := ctx.Err(); err != nil {
		return domain.DataAccess("memory: agregar movimiento", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastMovID++
	m.ID = r.s.lastMovID
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: movimientos por producto", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.selectMovements(func(m *entity.StockMovement) bool { return m.ProductID == productID }, limit), nil
}

func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: movimientos recientes", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.selectMovements(func(*entity.StockMovement) bool { return true }, limit), nil
}

func (r *StockMovementRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: movimientos por período", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if !m.OccurredAt.Before(from) && m.OccurredAt.Before(to) {
			out = append(out, r.s.withProduct(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DailyTotals pliega los movimientos de [from, to) con inventory.BucketDaily en la zona loc.
func (r *StockMovementRepo) DailyTotals(ctx context.Context, from, to time.Time, loc *time.Location) ([]entity.DailyMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: totales diarios", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	r.s.mu.RLock()
	inWindow := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if !m.OccurredAt.Before(from) && m.OccurredAt.Before(to) {
			inWindow = append(inWindow, m)
		}
	}
	r.s.mu.RUnlock()
	return inventory.BucketDaily(inWindow, from.In(loc), to), nil
}

func (r *StockMovementRepo) TotalsByProduct(ctx context.Context, productIDs []string) ([]entity.MovementTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DataAccess("memory: totales por producto", err)
	}
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	type key struct{ productID, typ string }
	sums := make(map[key]int64)

	r.s.mu.RLock()
	for _, m := range r.s.movements {
		if _, ok := wanted[m.ProductID]; ok {
			sums[key{m.ProductID, m.Type}] += m.Quantity
		}
	}
	r.s.mu.RUnlock()

	out := make([]entity.MovementTotal, 0, len(sums))
	for k, q := range sums {
		out = append(out, entity.MovementTotal{ProductID: k.productID, Type: k.typ, Quantity: q})
	}
	return out, nil
}

// selectMovements filtra, ordena por (occurred_at DESC, id DESC) y corta en limit. Requiere mu tomado.
func (s *Store) selectMovements(keep func(*entity.StockMovement) bool, limit int) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0)
	for _, m := range s.movements {
		if keep(m) {
			out = append(out, s.withProduct(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// withProduct copia el movimiento completando SKU y nombre vigentes. Requiere mu tomado.
func (s *Store) withProduct(m *entity.StockMovement) *entity.StockMovement {
	cp := *m
	if p, ok := s.products[m.ProductID]; ok {
		cp.ProductSKU = p.SKU
		cp.ProductName = p.Name
	}
	return &cp
}
