package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity es puntero para distinguir "ausente" de cero. Type se normaliza a mayúsculas
// en el caso de uso, que es quien valida el valor.
type RegisterMovementRequest struct {
	ProductID  string     `json:"product_id" validate:"required"`
	Type       string     `json:"type" validate:"required,max=20"`
	Quantity   *int64     `json:"quantity" validate:"required"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Source     string     `json:"source,omitempty" validate:"max=100"`
	Notes      string     `json:"notes,omitempty" validate:"max=1000"`
	CreatedBy  string     `json:"created_by,omitempty" validate:"max=120"`
}

// MovementResponse movimiento del libro.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductSKU  string    `json:"product_sku,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Source      string    `json:"source"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// StockResponse saldo actual de un producto.
type StockResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int64  `json:"current_stock"`
}

// BatchStockRequest body para POST /api/inventory/stock/batch.
type BatchStockRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=500,dive,uuid"`
}

// BatchStockResponse saldos por producto.
type BatchStockResponse struct {
	Stocks map[string]int64 `json:"stocks"`
}
