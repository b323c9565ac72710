package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/ledger/expenses. El monto llega
// positivo y se registra negado (egreso).
type CreateExpenseRequest struct {
	Category    string          `json:"category"` // inventory|utilities|rent|salaries|marketing|other
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
}

// LedgerEntryResponse asiento contable en respuestas.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Date          time.Time       `json:"date"`
}

// LedgerListResponse listado paginado de asientos.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
