package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, barcode, name, category, description, price, cost,
		quantity, sales_count, reorder_level, requires_prescription, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. El SKU es único.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, category, description, price, cost,
			quantity, sales_count, reorder_level, requires_prescription, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Barcode, product.Name, product.Category,
		product.Description, product.Price, product.Cost, product.Quantity,
		product.SalesCount, product.ReorderLevel, product.RequiresPrescription,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// List lista productos con filtros opcionales: categoría exacta y bajo stock
// (quantity <= reorder_level).
func (r *ProductRepo) List(category string, lowStockOnly bool, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND (NOT $2::boolean OR quantity <= reorder_level)
		ORDER BY name
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, category, lowStockOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.Description,
			&p.Price, &p.Cost, &p.Quantity, &p.SalesCount, &p.ReorderLevel,
			&p.RequiresPrescription, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza datos de catálogo. Quantity y SalesCount no se tocan por
// aquí: van por AdjustStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET barcode = $2, name = $3, category = $4, description = $5,
			price = $6, cost = $7, reorder_level = $8, requires_prescription = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Category, product.Description,
		product.Price, product.Cost, product.ReorderLevel, product.RequiresPrescription,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustStock aplica deltas relativos sobre quantity y sales_count en un solo
// UPDATE. Producto inexistente se detecta por filas afectadas.
func (r *ProductRepo) AdjustStock(productID string, deltaQuantity, deltaSalesCount int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity + $2, sales_count = sales_count + $3, updated_at = now()
		 WHERE id = $1`,
		productID, deltaQuantity, deltaSalesCount,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStockGuarded es AdjustStock con piso en cero: el predicado
// quantity + delta >= 0 va en el propio UPDATE, así la verificación y el
// ajuste son una sola sentencia atómica.
func (r *ProductRepo) AdjustStockGuarded(productID string, deltaQuantity, deltaSalesCount int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity + $2, sales_count = sales_count + $3, updated_at = now()
		 WHERE id = $1 AND quantity + $2 >= 0`,
		productID, deltaQuantity, deltaSalesCount,
	)
	if err != nil {
		return fmt.Errorf("adjust stock guarded: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.Description,
		&p.Price, &p.Cost, &p.Quantity, &p.SalesCount, &p.ReorderLevel,
		&p.RequiresPrescription, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
