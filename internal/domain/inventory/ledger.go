// Package inventory contiene las reglas puras del motor de stock: mapeo tipo→signo,
// plegado del libro, selección de alertas y agrupación diaria. Sin E/S.
package inventory

import (
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// SignedQuantity aplica el signo del tipo de movimiento a la cantidad.
// INBOUND y ADJUSTMENT suman, OUTBOUND resta. Es el único lugar donde vive este mapeo.
func SignedQuantity(movementType string, quantity int64) int64 {
	switch movementType {
	case entity.MovementTypeInbound, entity.MovementTypeAdjustment:
		return quantity
	case entity.MovementTypeOutbound:
		return -quantity
	default:
		return 0
	}
}

// Balance pliega las entradas del libro en el stock actual. Libro vacío = 0.
func Balance(movements []*entity.StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += SignedQuantity(m.Type, m.Quantity)
	}
	return total
}

// BalancesFromTotals pliega sumas crudas (producto × tipo) en stock por producto.
// Cada id pedido aparece en el resultado, con 0 si no tiene movimientos.
func BalancesFromTotals(productIDs []string, totals []entity.MovementTotal) map[string]int64 {
	out := make(map[string]int64, len(productIDs))
	for _, id := range productIDs {
		out[id] = 0
	}
	for _, t := range totals {
		if _, ok := out[t.ProductID]; !ok {
			continue
		}
		out[t.ProductID] += SignedQuantity(t.Type, t.Quantity)
	}
	return out
}

// IsValidMovementType indica si t es uno de los tipos soportados por el libro.
func IsValidMovementType(t string) bool {
	switch t {
	case entity.MovementTypeInbound, entity.MovementTypeOutbound, entity.MovementTypeAdjustment:
		return true
	}
	return false
}

// ValidateMovement valida una entrada antes de agregarla al libro.
// INBOUND/OUTBOUND exigen cantidad >= 0; ADJUSTMENT admite signo (corrección hacia abajo).
func ValidateMovement(m *entity.StockMovement) error {
	if m == nil {
		return domain.NewValidationError("", "movimiento requerido")
	}
	if m.ProductID == "" {
		return domain.NewValidationError("product_id", "es requerido")
	}
	if !IsValidMovementType(m.Type) {
		return domain.NewValidationError("type", "debe ser INBOUND, OUTBOUND o ADJUSTMENT")
	}
	if m.Type != entity.MovementTypeAdjustment && m.Quantity < 0 {
		return domain.NewValidationError("quantity", "no puede ser negativa")
	}
	return nil
}
