package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, document_id, email, phone, segment, total_spent,
		total_orders, average_order_value, loyalty_points, last_order_date, created_at, updated_at`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, document_id, email, phone, segment, total_spent,
			total_orders, average_order_value, loyalty_points, last_order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.DocumentID, customer.Email, customer.Phone,
		string(customer.Segment), customer.TotalSpent, customer.TotalOrders,
		customer.AverageOrderValue, customer.LoyaltyPoints, customer.LastOrderDate,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.DocumentID, &c.Email, &c.Phone, &c.Segment,
			&c.TotalSpent, &c.TotalOrders, &c.AverageOrderValue, &c.LoyaltyPoints,
			&c.LastOrderDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto. Los acumulados y el segmento tienen
// sus propias sentencias.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, document_id = $3, email = $4, phone = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.DocumentID, customer.Email, customer.Phone,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// ApplyPurchase acumula una compra en un solo UPDATE relativo y devuelve la
// fila fresca. Las expresiones del lado derecho ven los valores viejos, por
// eso el promedio se calcula con (total_spent + $2) / (total_orders + 1).
// (nil, nil) si el cliente no existe.
func (r *CustomerRepo) ApplyPurchase(customerID string, total decimal.Decimal, points int64, when time.Time) (*entity.Customer, error) {
	query := `
		UPDATE customers SET
			total_spent = total_spent + $2,
			total_orders = total_orders + 1,
			average_order_value = (total_spent + $2) / (total_orders + 1),
			loyalty_points = loyalty_points + $3,
			last_order_date = $4,
			updated_at = $4
		WHERE id = $1
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, customerID, total, points, when))
	if err != nil {
		return nil, fmt.Errorf("apply purchase: %w", err)
	}
	return c, nil
}

// UpdateSegment persiste el segmento derivado (o fijado a mano).
func (r *CustomerRepo) UpdateSegment(customerID string, seg segment.Segment) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE customers SET segment = $2, updated_at = now() WHERE id = $1`,
		customerID, string(seg),
	)
	if err != nil {
		return fmt.Errorf("update segment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.DocumentID, &c.Email, &c.Phone, &c.Segment,
		&c.TotalSpent, &c.TotalOrders, &c.AverageOrderValue, &c.LoyaltyPoints,
		&c.LastOrderDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
