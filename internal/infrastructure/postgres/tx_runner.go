package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

var _ pos.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción, ejecuta fn con los repositorios del
// pipeline de ventas atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunSale(ctx context.Context, fn func(unit pos.SaleUnit) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newSaleUnit(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ pos.SaleUnit = (*saleUnit)(nil)

// saleUnit ata los cuatro repositorios del pipeline a una misma pgx.Tx.
type saleUnit struct {
	tx pgx.Tx
}

func newSaleUnit(tx pgx.Tx) *saleUnit { return &saleUnit{tx: tx} }

func (u *saleUnit) Sales() repository.SaleRepository         { return NewSaleRepository(u.tx) }
func (u *saleUnit) Products() repository.ProductRepository   { return NewProductRepository(u.tx) }
func (u *saleUnit) Customers() repository.CustomerRepository { return NewCustomerRepository(u.tx) }
func (u *saleUnit) Ledger() repository.LedgerRepository      { return NewLedgerRepository(u.tx) }

// Savepoint corre fn en una transacción anidada de pgx (SAVEPOINT por debajo).
// Una sentencia fallida envenena la transacción de Postgres entera; el
// ROLLBACK TO SAVEPOINT que hace sp.Rollback la deja utilizable de nuevo, así
// un fallo dentro de fn revierte solo ese tramo y el caller decide si sigue.
func (u *saleUnit) Savepoint(ctx context.Context, fn func(pos.SaleUnit) error) error {
	sp, err := u.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}
	if err := fn(newSaleUnit(sp)); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
