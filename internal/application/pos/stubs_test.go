package pos_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional (snapshot + restore).
// El runner clona el estado antes de ejecutar fn y lo restaura si fn falla,
// reproduciendo el rollback total de la transacción y el parcial del savepoint.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	sales     map[int64]*entity.Sale
	items     map[int64][]*entity.SaleItem
	ledger    []*entity.LedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[int64]*entity.Sale),
		items:     make(map[int64][]*entity.SaleItem),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, cu := range s.customers {
		cc := *cu
		if cu.LastOrderDate != nil {
			d := *cu.LastOrderDate
			cc.LastOrderDate = &d
		}
		c.customers[id] = &cc
	}
	for id, sa := range s.sales {
		cs := *sa
		if sa.VoidedAt != nil {
			d := *sa.VoidedAt
			cs.VoidedAt = &d
		}
		c.sales[id] = &cs
	}
	for id, list := range s.items {
		cl := make([]*entity.SaleItem, len(list))
		for i, it := range list {
			ci := *it
			cl[i] = &ci
		}
		c.items[id] = cl
	}
	for _, e := range s.ledger {
		ce := *e
		c.ledger = append(c.ledger, &ce)
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios stub sobre el almacén, con inyección de fallos puntuales.
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	store       *memStore
	adjustErrOn map[string]error // productID -> error inyectado en AdjustStock*
}

func (r *stubProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) List(category string, lowStockOnly bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if category != "" && p.Category != category {
			continue
		}
		if lowStockOnly && p.Quantity > p.ReorderLevel {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubProductRepo) Update(product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *stubProductRepo) AdjustStock(productID string, deltaQuantity, deltaSalesCount int64) error {
	if err := r.adjustErrOn[productID]; err != nil {
		return err
	}
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity += deltaQuantity
	p.SalesCount += deltaSalesCount
	return nil
}

func (r *stubProductRepo) AdjustStockGuarded(productID string, deltaQuantity, deltaSalesCount int64) error {
	if err := r.adjustErrOn[productID]; err != nil {
		return err
	}
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Quantity+deltaQuantity < 0 {
		return domain.ErrInsufficientStock
	}
	p.Quantity += deltaQuantity
	p.SalesCount += deltaSalesCount
	return nil
}

func (r *stubProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type stubCustomerRepo struct {
	store        *memStore
	applyErr     error // error inyectado en ApplyPurchase
	applyCalls   int
	segmentCalls int
}

func (r *stubCustomerRepo) Create(customer *entity.Customer) error {
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.store.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(customer *entity.Customer) error {
	if _, ok := r.store.customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) ApplyPurchase(customerID string, total decimal.Decimal, points int64, when time.Time) (*entity.Customer, error) {
	r.applyCalls++
	if r.applyErr != nil {
		return nil, r.applyErr
	}
	c, ok := r.store.customers[customerID]
	if !ok {
		return nil, nil
	}
	c.TotalSpent = c.TotalSpent.Add(total)
	c.TotalOrders++
	c.AverageOrderValue = c.TotalSpent.Div(decimal.NewFromInt(c.TotalOrders))
	c.LoyaltyPoints += points
	d := when
	c.LastOrderDate = &d
	c.UpdatedAt = when
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) UpdateSegment(customerID string, seg segment.Segment) error {
	r.segmentCalls++
	c, ok := r.store.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Segment = seg
	return nil
}

func (r *stubCustomerRepo) Delete(id string) error {
	delete(r.store.customers, id)
	return nil
}

type stubSaleRepo struct {
	store      *memStore
	createErr  error // error inyectado en Create
	itemCalls  int
	failItemAt int   // 1-based: llamada de CreateItem que falla (0 = nunca)
	itemErr    error // error devuelto en esa llamada
	voidedErr  error // error inyectado en MarkVoided
}

func (r *stubSaleRepo) Create(sale *entity.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.store.sales[sale.ID]; exists {
		return domain.ErrDuplicate
	}
	cp := *sale
	r.store.sales[sale.ID] = &cp
	return nil
}

func (r *stubSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.itemCalls++
	if r.failItemAt > 0 && r.itemCalls == r.failItemAt {
		return r.itemErr
	}
	cp := *item
	r.store.items[item.SaleID] = append(r.store.items[item.SaleID], &cp)
	return nil
}

func (r *stubSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) GetItemsBySaleID(saleID int64) ([]*entity.SaleItem, error) {
	list := r.store.items[saleID]
	out := make([]*entity.SaleItem, len(list))
	for i, it := range list {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (r *stubSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubSaleRepo) MarkVoided(id int64, reason string, when time.Time) error {
	if r.voidedErr != nil {
		return r.voidedErr
	}
	s, ok := r.store.sales[id]
	if !ok || s.Status != entity.SaleStatusCompleted {
		return domain.ErrConflict
	}
	s.Status = entity.SaleStatusVoided
	s.VoidReason = reason
	d := when
	s.VoidedAt = &d
	s.UpdatedAt = when
	return nil
}

type stubLedgerRepo struct {
	store     *memStore
	createErr error // error inyectado en Create
}

func (r *stubLedgerRepo) Create(entry *entity.LedgerEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *entry
	r.store.ledger = append(r.store.ledger, &cp)
	return nil
}

func (r *stubLedgerRepo) ListByReference(reference string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.store.ledger {
		if e.Reference == reference {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubLedgerRepo) List(category string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.store.ledger {
		if category != "" && e.Category != category {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Runner transaccional stub.
// ──────────────────────────────────────────────────────────────────────────────

type stubTxRunner struct {
	store     *memStore
	products  *stubProductRepo
	customers *stubCustomerRepo
	sales     *stubSaleRepo
	ledger    *stubLedgerRepo
	commits   int
	rollbacks int
}

func newStubRunner(store *memStore) *stubTxRunner {
	return &stubTxRunner{
		store:     store,
		products:  &stubProductRepo{store: store, adjustErrOn: make(map[string]error)},
		customers: &stubCustomerRepo{store: store},
		sales:     &stubSaleRepo{store: store},
		ledger:    &stubLedgerRepo{store: store},
	}
}

func (r *stubTxRunner) RunSale(ctx context.Context, fn func(pos.SaleUnit) error) error {
	snap := r.store.clone()
	if err := fn(&stubUnit{runner: r}); err != nil {
		*r.store = *snap
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

type stubUnit struct {
	runner *stubTxRunner
}

func (u *stubUnit) Sales() repository.SaleRepository         { return u.runner.sales }
func (u *stubUnit) Products() repository.ProductRepository   { return u.runner.products }
func (u *stubUnit) Customers() repository.CustomerRepository { return u.runner.customers }
func (u *stubUnit) Ledger() repository.LedgerRepository      { return u.runner.ledger }

// Savepoint clona y restaura solo el tramo interno: un fallo dentro de fn no
// toca lo escrito antes del savepoint.
func (u *stubUnit) Savepoint(ctx context.Context, fn func(pos.SaleUnit) error) error {
	snap := u.runner.store.clone()
	if err := fn(u); err != nil {
		*u.runner.store = *snap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Semillas y helpers compartidos.
// ──────────────────────────────────────────────────────────────────────────────

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedProduct(store *memStore, id string, price int64, quantity int64) *entity.Product {
	p := &entity.Product{
		ID:       id,
		SKU:      "SKU-" + id,
		Name:     "Producto " + id,
		Category: "analgésicos",
		Price:    money(price),
		Quantity: quantity,
	}
	store.products[id] = p
	return p
}

func seedCustomer(store *memStore, id string, seg segment.Segment) *entity.Customer {
	c := &entity.Customer{
		ID:      id,
		Name:    "Cliente " + id,
		Segment: seg,
	}
	store.customers[id] = c
	return c
}
