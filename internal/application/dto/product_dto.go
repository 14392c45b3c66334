package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Status tiene prioridad sobre Active; sin ninguno el producto nace ACTIVE.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=100"`
	Name        string          `json:"name" validate:"required,max=200"`
	CategoryID  *string         `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Unit        string          `json:"unit,omitempty" validate:"omitempty,max=20"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int64           `json:"min_stock" validate:"gte=0"`
	Status      string          `json:"status,omitempty" validate:"omitempty,max=20"`
	Active      *bool           `json:"active,omitempty"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
}

// UpdateProductRequest body para PUT /api/products/:id. El SKU no es editable.
// CategoryID = "" quita la categoría.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	CategoryID  *string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Unit        *string          `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MinStock    *int64           `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// ProductResponse producto con stock derivado del libro.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	MinStock     int64           `json:"min_stock"`
	CurrentStock int64           `json:"current_stock"`
	BelowMinimum bool            `json:"below_minimum"`
	Status       string          `json:"status"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse respuesta paginada de GET /api/products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
