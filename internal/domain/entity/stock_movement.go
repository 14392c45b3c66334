package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeInbound    = "INBOUND"    // entrada
	MovementTypeOutbound   = "OUTBOUND"   // salida
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste (corrección)
)

// StockMovement es una entrada inmutable del libro de movimientos.
// Las correcciones se registran como nuevos ADJUSTMENT, nunca editando el historial.
type StockMovement struct {
	ID         int64 // asignado por el libro, estrictamente creciente
	ProductID  string
	OccurredAt time.Time
	Type       string
	Quantity   int64
	Source     string // origen: compra, venta, inventario, etc.
	Notes      string
	CreatedBy  string

	// Solo lectura, completados por consultas con join.
	ProductSKU  string
	ProductName string
}

// MovementTotal suma cruda de cantidades por producto y tipo (sin signo aplicado).
type MovementTotal struct {
	ProductID string
	Type      string
	Quantity  int64
}

// StockAlert producto activo con stock igual o por debajo de su mínimo.
type StockAlert struct {
	Product      *Product
	CurrentStock int64
	Minimum      int64
}

// DailyMovement totales por tipo para un día calendario.
type DailyMovement struct {
	Date       time.Time // medianoche local del día
	Inbound    int64
	Outbound   int64
	Adjustment int64
}

// Add suma quantity a la columna del tipo. Tipos desconocidos se ignoran.
func (d *DailyMovement) Add(movementType string, quantity int64) {
	switch movementType {
	case MovementTypeInbound:
		d.Inbound += quantity
	case MovementTypeOutbound:
		d.Outbound += quantity
	case MovementTypeAdjustment:
		d.Adjustment += quantity
	}
}
