package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un producto. INACTIVE es terminal (borrado lógico).
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusInactive = "INACTIVE"
)

// DefaultUnit unidad de medida cuando no se informa.
const DefaultUnit = "un"

// Product representa un producto del catálogo.
// El stock no se guarda aquí: se deriva siempre del libro de movimientos.
type Product struct {
	ID           string
	SKU          string // único entre activos e inactivos; inmutable
	Name         string
	CategoryID   *string
	CategoryName string // solo lectura (join con categories)
	Unit         string
	Price        decimal.Decimal
	MinStock     int64 // umbral de stock mínimo
	Status       string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el producto participa de totales y alertas.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Status     string // vacío = todos
	CategoryID string
	Search     string // nombre, SKU o descripción
	Limit      int
	Offset     int
}
