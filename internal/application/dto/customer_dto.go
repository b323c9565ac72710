package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	DocumentID string `json:"document_id,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. Solo datos de
// contacto; los acumulados y el segmento tienen sus propias operaciones.
type UpdateCustomerRequest struct {
	Name       *string `json:"name,omitempty"`
	DocumentID *string `json:"document_id,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// OverrideSegmentRequest body para PUT /api/customers/:id/segment.
// Escape manual: fija el segmento sin evaluar las reglas; la siguiente venta
// del cliente lo vuelve a derivar.
type OverrideSegmentRequest struct {
	Segment string `json:"segment"`
}

// CustomerResponse cliente con sus acumulados en respuestas.
type CustomerResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	DocumentID        string          `json:"document_id,omitempty"`
	Email             string          `json:"email,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Segment           string          `json:"segment"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	TotalOrders       int64           `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	LoyaltyPoints     int64           `json:"loyalty_points"`
	LastOrderDate     *time.Time      `json:"last_order_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SegmentResponse resultado de recalcular o fijar el segmento.
type SegmentResponse struct {
	CustomerID string `json:"customer_id"`
	Segment    string `json:"segment"`
}
