package repository

import (
	"time"

	"github.com/jdramirez/farmapos-api/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia para LedgerEntry (DIP).
// El libro es solo de inserción: no hay Update ni Delete.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	ListByReference(reference string) ([]*entity.LedgerEntry, error)
	List(category string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
}
