package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la farmacia.
// Quantity y SalesCount son acumuladores que solo se modifican vía el
// ajustador de inventario (updates relativos); nunca por el CRUD de catálogo.
type Product struct {
	ID                   string
	SKU                  string // código único del producto
	Barcode              string
	Name                 string
	Category             string
	Description          string
	Price                decimal.Decimal // precio de venta
	Cost                 decimal.Decimal // costo de adquisición
	Quantity             int64           // existencias (puede quedar negativo según política)
	SalesCount           int64           // unidades vendidas acumuladas
	ReorderLevel         int64           // umbral de reposición
	RequiresPrescription bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
