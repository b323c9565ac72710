package dto

import "github.com/shopspring/decimal"

// CommitSaleRequest body para POST /api/sales y POST /api/pos/checkout.
// Ambos endpoints comparten el mismo pipeline de confirmación; solo cambia
// la forma de la respuesta.
type CommitSaleRequest struct {
	CustomerID      string            `json:"customer_id,omitempty"` // vacío o "walk-in": venta de mostrador
	CustomerName    string            `json:"customer_name,omitempty"`
	CashierID       string            `json:"cashier_id"`
	CashierName     string            `json:"cashier_name"`
	ReferenceNumber string            `json:"reference_number,omitempty"` // opcional; se genera REF-<ts> si va vacío
	PaymentMethod   string            `json:"payment_method"`
	PaymentInfo     string            `json:"payment_info,omitempty"`
	Till            string            `json:"till,omitempty"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Discount        decimal.Decimal   `json:"discount"`
	Tax             decimal.Decimal   `json:"tax"`
	Total           decimal.Decimal   `json:"total"`
	AmountPaid      decimal.Decimal   `json:"amount_paid"`
	ChangeAmount    decimal.Decimal   `json:"change_amount,omitempty"` // opcional; si va en cero se calcula
	Items           []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea de venta. Nombre y categoría son opcionales: si van
// vacíos se congelan desde el catálogo al momento del commit.
type SaleItemRequest struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Category    string          `json:"category,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SaleResponse venta completa para GET /api/sales/:id y POST /api/sales.
type SaleResponse struct {
	TransactionID   int64              `json:"transaction_id"`
	OrderNumber     int64              `json:"order_number"`
	ReferenceNumber string             `json:"reference_number"`
	CustomerID      string             `json:"customer_id,omitempty"`
	CustomerName    string             `json:"customer_name,omitempty"`
	CashierID       string             `json:"cashier_id"`
	CashierName     string             `json:"cashier_name"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentInfo     string             `json:"payment_info,omitempty"`
	Till            string             `json:"till,omitempty"`
	Status          string             `json:"status"`
	VoidReason      string             `json:"void_reason,omitempty"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Discount        decimal.Decimal    `json:"discount"`
	Tax             decimal.Decimal    `json:"tax"`
	Total           decimal.Decimal    `json:"total"`
	AmountPaid      decimal.Decimal    `json:"amount_paid"`
	ChangeDue       decimal.Decimal    `json:"change_due"`
	Date            string             `json:"date"`
	Items           []SaleItemResponse `json:"items,omitempty"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleListResponse listado paginado de ventas (solo cabeceras).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CheckoutResponse respuesta compacta para la caja (POST /api/pos/checkout).
type CheckoutResponse struct {
	TransactionID   int64           `json:"transaction_id"`
	OrderNumber     int64           `json:"order_number"`
	ReferenceNumber string          `json:"reference_number"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	ChangeDue       decimal.Decimal `json:"change_due"`
}

// RefundRequest body para POST /api/sales/:id/refund.
// Items vacío repone el inventario completo de la venta; con items se repone
// solo lo indicado (devolución parcial de unidades).
type RefundRequest struct {
	Reason string               `json:"reason"`
	Items  []RefundItemOverride `json:"items,omitempty"`
}

// RefundItemOverride cantidad a reponer de un producto en la devolución.
type RefundItemOverride struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}
