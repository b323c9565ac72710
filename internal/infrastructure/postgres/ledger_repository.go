package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, category, description, amount, reference, payment_method, date, created_at`

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL
// (usable con pool o tx). El libro es solo de inserción.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia para el libro contable.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta un asiento.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, category, description, amount, reference, payment_method, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Category, entry.Description, entry.Amount, entry.Reference,
		entry.PaymentMethod, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByReference lista los asientos de una referencia en orden de inserción
// (la venta primero, su eventual devolución después).
func (r *LedgerRepo) ListByReference(reference string) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE reference = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, reference)
	if err != nil {
		return nil, fmt.Errorf("list ledger by reference: %w", err)
	}
	return collectLedgerRows(rows)
}

// List lista asientos con filtros opcionales de categoría y rango de fechas.
func (r *LedgerRepo) List(category string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE ($1 = '' OR category = $1)
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, category, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return collectLedgerRows(rows)
}

func collectLedgerRows(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.Reference,
			&e.PaymentMethod, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
