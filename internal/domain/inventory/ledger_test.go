package inventory_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
)

func mov(productID, typ string, qty int64) *entity.StockMovement {
	return &entity.StockMovement{ProductID: productID, Type: typ, Quantity: qty}
}

func TestSignedQuantity(t *testing.T) {
	tests := []struct {
		typ  string
		qty  int64
		want int64
	}{
		{entity.MovementTypeInbound, 10, 10},
		{entity.MovementTypeOutbound, 10, -10},
		{entity.MovementTypeAdjustment, 10, 10},
		{entity.MovementTypeAdjustment, -5, -5},
		{"TRANSFER", 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inventory.SignedQuantity(tt.typ, tt.qty), "%s %d", tt.typ, tt.qty)
	}
}

func TestBalance_EjemploLibro(t *testing.T) {
	ledger := []*entity.StockMovement{
		mov("A", entity.MovementTypeInbound, 100),
		mov("A", entity.MovementTypeOutbound, 30),
		mov("A", entity.MovementTypeAdjustment, -5),
	}
	assert.Equal(t, int64(65), inventory.Balance(ledger))
}

func TestBalance_LibroVacio(t *testing.T) {
	assert.Equal(t, int64(0), inventory.Balance(nil))
}

func TestBalance_IndependienteDelOrden(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	types := []string{entity.MovementTypeInbound, entity.MovementTypeOutbound, entity.MovementTypeAdjustment}

	for round := 0; round < 50; round++ {
		ledger := make([]*entity.StockMovement, 0, 20)
		var want int64
		for i := 0; i < 20; i++ {
			typ := types[r.Intn(len(types))]
			qty := int64(r.Intn(100))
			if typ == entity.MovementTypeAdjustment && r.Intn(2) == 0 {
				qty = -qty
			}
			ledger = append(ledger, mov("A", typ, qty))
			if typ == entity.MovementTypeOutbound {
				want -= qty
			} else {
				want += qty
			}
		}
		got := inventory.Balance(ledger)
		r.Shuffle(len(ledger), func(i, j int) { ledger[i], ledger[j] = ledger[j], ledger[i] })
		require.Equal(t, want, got)
		require.Equal(t, got, inventory.Balance(ledger), "el plegado no debe depender del orden")
	}
}

func TestBalance_SinDeduplicacion(t *testing.T) {
	entry := mov("A", entity.MovementTypeInbound, 7)
	assert.Equal(t, int64(14), inventory.Balance([]*entity.StockMovement{entry, entry}))
}

func TestBalancesFromTotals(t *testing.T) {
	totals := []entity.MovementTotal{
		{ProductID: "A", Type: entity.MovementTypeInbound, Quantity: 100},
		{ProductID: "A", Type: entity.MovementTypeOutbound, Quantity: 30},
		{ProductID: "A", Type: entity.MovementTypeAdjustment, Quantity: -5},
		{ProductID: "B", Type: entity.MovementTypeInbound, Quantity: 50},
		{ProductID: "Z", Type: entity.MovementTypeInbound, Quantity: 999},
	}
	got := inventory.BalancesFromTotals([]string{"A", "B", "C"}, totals)
	assert.Equal(t, map[string]int64{"A": 65, "B": 50, "C": 0}, got)
}

func TestValidateMovement(t *testing.T) {
	tests := []struct {
		name  string
		m     *entity.StockMovement
		field string
	}{
		{"nil", nil, ""},
		{"sin producto", mov("", entity.MovementTypeInbound, 1), "product_id"},
		{"tipo desconocido", mov("A", "TRANSFER", 1), "type"},
		{"entrada negativa", mov("A", entity.MovementTypeInbound, -1), "quantity"},
		{"salida negativa", mov("A", entity.MovementTypeOutbound, -1), "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := inventory.ValidateMovement(tt.m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	assert.NoError(t, inventory.ValidateMovement(mov("A", entity.MovementTypeInbound, 0)))
	assert.NoError(t, inventory.ValidateMovement(mov("A", entity.MovementTypeAdjustment, -5)))
}
