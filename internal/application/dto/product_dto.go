package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU                  string          `json:"sku"`
	Barcode              string          `json:"barcode,omitempty"`
	Name                 string          `json:"name"`
	Category             string          `json:"category,omitempty"`
	Description          string          `json:"description,omitempty"`
	Price                decimal.Decimal `json:"price"`
	Cost                 decimal.Decimal `json:"cost"`
	Quantity             int64           `json:"quantity"` // existencias iniciales
	ReorderLevel         int64           `json:"reorder_level,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
// Quantity y SalesCount no se actualizan por aquí: van por el ajustador.
type UpdateProductRequest struct {
	Barcode              *string          `json:"barcode,omitempty"`
	Name                 *string          `json:"name,omitempty"`
	Category             *string          `json:"category,omitempty"`
	Description          *string          `json:"description,omitempty"`
	Price                *decimal.Decimal `json:"price,omitempty"`
	Cost                 *decimal.Decimal `json:"cost,omitempty"`
	ReorderLevel         *int64           `json:"reorder_level,omitempty"`
	RequiresPrescription *bool            `json:"requires_prescription,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID                   string          `json:"id"`
	SKU                  string          `json:"sku"`
	Barcode              string          `json:"barcode,omitempty"`
	Name                 string          `json:"name"`
	Category             string          `json:"category,omitempty"`
	Description          string          `json:"description,omitempty"`
	Price                decimal.Decimal `json:"price"`
	Cost                 decimal.Decimal `json:"cost"`
	Quantity             int64           `json:"quantity"`
	SalesCount           int64           `json:"sales_count"`
	ReorderLevel         int64           `json:"reorder_level"`
	RequiresPrescription bool            `json:"requires_prescription"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
