// Package cache ofrece un caché de lectura para el catálogo de productos.
// El caché es una optimización: toda escritura va siempre a Postgres y el
// caché solo se invalida; nunca es fuente de verdad.
package cache

import (
	"context"

	"github.com/jdramirez/farmapos-api/internal/domain/entity"
)

// ProductCache cachea productos por ID. Get retorna (nil, nil) en un miss,
// igual que los repositorios cuando no hay fila.
type ProductCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, productIDs ...string) error
}

// Noop es la implementación nula: todo miss, ninguna escritura. Se usa
// cuando Redis no está configurado y en tests.
type Noop struct{}

// NewNoop construye el caché nulo.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) Get(ctx context.Context, productID string) (*entity.Product, error) {
	return nil, nil
}

func (*Noop) Set(ctx context.Context, product *entity.Product) error { return nil }

func (*Noop) Delete(ctx context.Context, productIDs ...string) error { return nil }

var _ ProductCache = (*Noop)(nil)
