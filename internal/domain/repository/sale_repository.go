package repository

import (
	"time"

	"github.com/jdramirez/farmapos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y SaleItem (DIP).
// MarkVoided aplica la transición de un solo sentido completed -> voided con
// chequeo de filas afectadas: cero filas significa que la venta ya estaba
// anulada (ErrConflict).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id int64) (*entity.Sale, error)
	GetItemsBySaleID(saleID int64) ([]*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
	MarkVoided(id int64, reason string, when time.Time) error
}
