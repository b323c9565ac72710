package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
)

// Customer representa un cliente registrado de la farmacia.
// Los acumulados (TotalSpent, TotalOrders, LoyaltyPoints, LastOrderDate) solo
// crecen con cada venta confirmada; una devolución no los revierte.
type Customer struct {
	ID                string
	Name              string
	DocumentID        string // cédula o NIT
	Email             string
	Phone             string
	Segment           segment.Segment
	TotalSpent        decimal.Decimal
	TotalOrders       int64
	AverageOrderValue decimal.Decimal
	LoyaltyPoints     int64
	LastOrderDate     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
