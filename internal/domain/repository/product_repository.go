package repository

import (
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustStock y AdjustStockGuarded aplican deltas relativos sobre quantity y
// sales_count en un solo UPDATE; la variante Guarded rechaza con
// ErrInsufficientStock los deltas que dejarían las existencias en negativo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(category string, lowStockOnly bool, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	AdjustStock(productID string, deltaQuantity, deltaSalesCount int64) error
	AdjustStockGuarded(productID string, deltaQuantity, deltaSalesCount int64) error
	Delete(id string) error
}
