package inventory

import (
	"sort"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// IsBelowOrAtMinimum es el único criterio de "bajo mínimo": stock <= mínimo.
func IsBelowOrAtMinimum(stock, minimum int64) bool {
	return stock <= minimum
}

// SelectAlerts devuelve los productos activos con stock <= mínimo, ordenados por stock
// ascendente y luego por nombre, truncados a limit.
func SelectAlerts(products []*entity.Product, balances map[string]int64, limit int) []entity.StockAlert {
	alerts := make([]entity.StockAlert, 0)
	for _, p := range products {
		if p == nil || !p.IsActive() {
			continue
		}
		stock := balances[p.ID]
		if !IsBelowOrAtMinimum(stock, p.MinStock) {
			continue
		}
		alerts = append(alerts, entity.StockAlert{Product: p, CurrentStock: stock, Minimum: p.MinStock})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		if a.Product.Name != b.Product.Name {
			return a.Product.Name < b.Product.Name
		}
		return a.Product.ID < b.Product.ID
	})

	if limit >= 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts
}

// CountAlerts cuenta los productos activos con stock <= mínimo.
func CountAlerts(products []*entity.Product, balances map[string]int64) int {
	n := 0
	for _, p := range products {
		if p != nil && p.IsActive() && IsBelowOrAtMinimum(balances[p.ID], p.MinStock) {
			n++
		}
	}
	return n
}
