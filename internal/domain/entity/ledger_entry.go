package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías del libro contable. Las ventas y devoluciones las escriben los
// pipelines; el resto entra por el endpoint de gastos operativos.
const (
	LedgerCategorySales     = "sales"
	LedgerCategoryRefunds   = "refunds"
	LedgerCategoryInventory = "inventory"
	LedgerCategoryUtilities = "utilities"
	LedgerCategoryRent      = "rent"
	LedgerCategorySalaries  = "salaries"
	LedgerCategoryMarketing = "marketing"
	LedgerCategoryOther     = "other"
)

// LedgerEntry asiento del libro contable de la farmacia. El libro es solo de
// inserción: una devolución agrega un asiento negativo, nunca borra el original.
type LedgerEntry struct {
	ID            string // uuid
	Category      string
	Description   string
	Amount        decimal.Decimal // positivo ingreso, negativo egreso
	Reference     string          // referencia a la venta (REF-...) o documento
	PaymentMethod string
	Date          time.Time
	CreatedAt     time.Time
}

// IsExpenseCategory indica si la categoría es de gasto operativo
// (registrable vía el endpoint de gastos; excluye sales y refunds).
func IsExpenseCategory(category string) bool {
	switch category {
	case LedgerCategoryInventory, LedgerCategoryUtilities, LedgerCategoryRent,
		LedgerCategorySalaries, LedgerCategoryMarketing, LedgerCategoryOther:
		return true
	}
	return false
}
