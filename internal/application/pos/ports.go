package pos

import (
	"context"

	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

// SaleUnit expone los repositorios atados a una misma transacción del
// pipeline de ventas. Savepoint ejecuta fn en un punto de guardado anidado:
// si fn falla se revierte solo lo hecho dentro de fn y la transacción externa
// sigue viva (lo usa el sub-paso de cliente, que es no-fatal).
type SaleUnit interface {
	Sales() repository.SaleRepository
	Products() repository.ProductRepository
	Customers() repository.CustomerRepository
	Ledger() repository.LedgerRepository
	Savepoint(ctx context.Context, fn func(SaleUnit) error) error
}

// SaleTxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil,
// Rollback completo en caso contrario.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(unit SaleUnit) error) error
}

// ReceiptPDFGenerator genera el PDF del recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error)
}

// Policy políticas de caja configurables.
type Policy struct {
	// AllowNegativeStock permite confirmar ventas sin existencias suficientes
	// (las deja en negativo). Con false el descuento usa la variante guardada
	// del ajustador y la venta falla con ErrInsufficientStock.
	AllowNegativeStock bool
}
