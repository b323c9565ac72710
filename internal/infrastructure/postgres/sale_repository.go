package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, order_number, reference_number, customer_id, customer_name,
		cashier_id, cashier_name, subtotal, discount, tax, total, amount_paid, change_due,
		payment_method, payment_info, till, status, void_reason, voided_at, date, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta. Dos commits en el mismo segundo
// chocan en la clave primaria y salen como ErrDuplicate.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, order_number, reference_number, customer_id, customer_name,
			cashier_id, cashier_name, subtotal, discount, tax, total, amount_paid, change_due,
			payment_method, payment_info, till, status, void_reason, voided_at, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OrderNumber, sale.ReferenceNumber, sale.CustomerID, sale.CustomerName,
		sale.CashierID, sale.CashierName, sale.Subtotal, sale.Discount, sale.Tax, sale.Total,
		sale.AmountPaid, sale.ChangeDue, sale.PaymentMethod, sale.PaymentInfo, sale.Till,
		sale.Status, sale.VoidReason, sale.VoidedAt, sale.Date, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea con los datos del producto congelados.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, category, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductName, item.Category,
		item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.OrderNumber, &s.ReferenceNumber, &s.CustomerID, &s.CustomerName,
		&s.CashierID, &s.CashierName, &s.Subtotal, &s.Discount, &s.Tax, &s.Total,
		&s.AmountPaid, &s.ChangeDue, &s.PaymentMethod, &s.PaymentInfo, &s.Till,
		&s.Status, &s.VoidReason, &s.VoidedAt, &s.Date, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID obtiene las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID int64) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, category, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Category,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cabeceras de ventas recientes.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.OrderNumber, &s.ReferenceNumber, &s.CustomerID,
			&s.CustomerName, &s.CashierID, &s.CashierName, &s.Subtotal, &s.Discount, &s.Tax,
			&s.Total, &s.AmountPaid, &s.ChangeDue, &s.PaymentMethod, &s.PaymentInfo, &s.Till,
			&s.Status, &s.VoidReason, &s.VoidedAt, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// MarkVoided aplica la transición completed -> voided condicionada por estado:
// cero filas afectadas significa que la venta ya estaba anulada (ErrConflict).
// La existencia de la venta la valida el caso de uso antes de llegar aquí.
func (r *SaleRepo) MarkVoided(id int64, reason string, when time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, void_reason = $3, voided_at = $4, updated_at = $4
		 WHERE id = $1 AND status = $5`,
		id, entity.SaleStatusVoided, reason, when, entity.SaleStatusCompleted,
	)
	if err != nil {
		return fmt.Errorf("mark sale voided: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
