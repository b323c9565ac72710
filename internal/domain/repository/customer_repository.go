package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
// ApplyPurchase acumula una compra en un solo UPDATE relativo (total_spent,
// total_orders, loyalty_points, average_order_value, last_order_date) y
// devuelve la fila fresca para clasificar; (nil, nil) si el cliente no existe.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	ApplyPurchase(customerID string, total decimal.Decimal, points int64, when time.Time) (*entity.Customer, error)
	UpdateSegment(customerID string, seg segment.Segment) error
	Delete(id string) error
}
