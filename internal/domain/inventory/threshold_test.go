package inventory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
)

func product(id, name string, minStock int64, status string) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: name, MinStock: minStock, Status: status}
}

func TestSelectAlerts_Ejemplo(t *testing.T) {
	products := []*entity.Product{
		product("A", "Alfa", 70, entity.ProductStatusActive),
		product("B", "Beta", 10, entity.ProductStatusActive),
	}
	balances := map[string]int64{"A": 65, "B": 50}

	alerts := inventory.SelectAlerts(products, balances, 10)
	require.Len(t, alerts, 1)
	assert.Equal(t, "A", alerts[0].Product.ID)
	assert.Equal(t, int64(65), alerts[0].CurrentStock)
	assert.Equal(t, int64(70), alerts[0].Minimum)
}

func TestSelectAlerts_IgualAlMinimoEntra(t *testing.T) {
	products := []*entity.Product{product("A", "Alfa", 10, entity.ProductStatusActive)}
	alerts := inventory.SelectAlerts(products, map[string]int64{"A": 10}, 5)
	assert.Len(t, alerts, 1)
}

func TestSelectAlerts_OrdenYDesempate(t *testing.T) {
	products := []*entity.Product{
		product("1", "Zeta", 100, entity.ProductStatusActive),
		product("2", "Alfa", 100, entity.ProductStatusActive),
		product("3", "Media", 100, entity.ProductStatusActive),
		product("4", "Baja", 100, entity.ProductStatusActive),
	}
	balances := map[string]int64{"1": 5, "2": 5, "3": 50, "4": -3}

	alerts := inventory.SelectAlerts(products, balances, 10)
	require.Len(t, alerts, 4)
	names := make([]string, 0, len(alerts))
	for _, a := range alerts {
		names = append(names, a.Product.Name)
	}
	assert.Equal(t, []string{"Baja", "Alfa", "Zeta", "Media"}, names)
}

func TestSelectAlerts_Propiedades(t *testing.T) {
	products := make([]*entity.Product, 0, 30)
	balances := make(map[string]int64)
	for i := 0; i < 30; i++ {
		status := entity.ProductStatusActive
		if i%4 == 0 {
			status = entity.ProductStatusInactive
		}
		id := fmt.Sprintf("P%02d", i)
		products = append(products, product(id, "Nombre "+id, int64(i%7)*10, status))
		balances[id] = int64((i * 13) % 60)
	}

	for _, limit := range []int{0, 1, 3, 10, 100} {
		alerts := inventory.SelectAlerts(products, balances, limit)
		assert.LessOrEqual(t, len(alerts), limit)
		for i, a := range alerts {
			assert.True(t, a.Product.IsActive(), "nunca devuelve inactivos")
			assert.LessOrEqual(t, a.CurrentStock, a.Minimum)
			if i > 0 {
				assert.LessOrEqual(t, alerts[i-1].CurrentStock, a.CurrentStock)
			}
		}
	}
}

func TestCountAlerts(t *testing.T) {
	products := []*entity.Product{
		product("A", "Alfa", 70, entity.ProductStatusActive),
		product("B", "Beta", 10, entity.ProductStatusActive),
		product("C", "Gama", 10, entity.ProductStatusInactive),
	}
	balances := map[string]int64{"A": 65, "B": 50, "C": 0}
	assert.Equal(t, 1, inventory.CountAlerts(products, balances))
}
