package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. La transición es de un solo sentido:
// completed -> voided.
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// WalkInCustomerID identificador reservado para ventas de mostrador
// sin cliente registrado.
const WalkInCustomerID = "walk-in"

// IsWalkIn indica si el ID de cliente corresponde a una venta de mostrador.
func IsWalkIn(customerID string) bool {
	return customerID == "" || customerID == WalkInCustomerID
}

// Sale representa una transacción de venta confirmada en caja.
// El ID se deriva del instante del commit (segundos Unix) y coincide con
// OrderNumber; dos commits en el mismo segundo chocan en la clave primaria.
type Sale struct {
	ID              int64 // segundos Unix del commit
	OrderNumber     int64 // igual al ID
	ReferenceNumber string
	CustomerID      string // vacío o "walk-in": venta de mostrador
	CustomerName    string
	CashierID       string
	CashierName     string
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	AmountPaid      decimal.Decimal
	ChangeDue       decimal.Decimal
	PaymentMethod   string
	PaymentInfo     string // detalle libre del medio de pago (voucher, banco)
	Till            string // caja registradora que emitió la venta
	Status          string
	VoidReason      string
	VoidedAt        *time.Time
	Date            time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SaleItem línea de venta con los datos del producto congelados al momento
// de la transacción (el catálogo puede cambiar después).
type SaleItem struct {
	ID          string // uuid
	SaleID      int64
	ProductID   string
	ProductName string
	Category    string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
