package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/application/inventory"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
	"github.com/jdramirez/farmapos-api/internal/application/usecase"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/cache"
	apphttp "github.com/jdramirez/farmapos-api/internal/interfaces/http"
	"github.com/jdramirez/farmapos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: replican los contratos de los repositorios de postgres
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	sales     map[int64]*entity.Sale
	items     map[int64][]*entity.SaleItem
	ledger    []*entity.LedgerEntry
}

func newMemDB() *memDB {
	return &memDB{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[int64]*entity.Sale),
		items:     make(map[int64][]*entity.SaleItem),
	}
}

func (db *memDB) clone() *memDB {
	cp := newMemDB()
	for k, v := range db.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range db.customers {
		c := *v
		if v.LastOrderDate != nil {
			t := *v.LastOrderDate
			c.LastOrderDate = &t
		}
		cp.customers[k] = &c
	}
	for k, v := range db.sales {
		s := *v
		if v.VoidedAt != nil {
			t := *v.VoidedAt
			s.VoidedAt = &t
		}
		cp.sales[k] = &s
	}
	for k, list := range db.items {
		dst := make([]*entity.SaleItem, len(list))
		for i, it := range list {
			cpIt := *it
			dst[i] = &cpIt
		}
		cp.items[k] = dst
	}
	cp.ledger = make([]*entity.LedgerEntry, len(db.ledger))
	for i, e := range db.ledger {
		cpE := *e
		cp.ledger[i] = &cpE
	}
	return cp
}

type fakeProducts struct{ db *memDB }

func (f *fakeProducts) Create(p *entity.Product) error {
	cp := *p
	f.db.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := f.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.db.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) List(category string, lowStockOnly bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.db.products {
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

func (f *fakeProducts) Update(p *entity.Product) error {
	if _, ok := f.db.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.db.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) AdjustStock(productID string, deltaQuantity, deltaSalesCount int64) error {
	p, ok := f.db.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity += deltaQuantity
	p.SalesCount += deltaSalesCount
	return nil
}

func (f *fakeProducts) AdjustStockGuarded(productID string, deltaQuantity, deltaSalesCount int64) error {
	p, ok := f.db.products[productID]
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

func (f *fakeProducts) Delete(id string) error {
	if _, ok := f.db.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.db.products, id)
	return nil
}

type fakeCustomers struct{ db *memDB }

func (f *fakeCustomers) Create(c *entity.Customer) error {
	cp := *c
	f.db.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomers) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.db.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.db.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCustomers) Update(c *entity.Customer) error {
	if _, ok := f.db.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.db.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomers) ApplyPurchase(customerID string, total decimal.Decimal, points int64, when time.Time) (*entity.Customer, error) {
	c, ok := f.db.customers[customerID]
	if !ok {
		return nil, nil
	}
	c.TotalSpent = c.TotalSpent.Add(total)
	c.TotalOrders++
	c.AverageOrderValue = c.TotalSpent.Div(decimal.NewFromInt(c.TotalOrders))
	c.LoyaltyPoints += points
	t := when
	c.LastOrderDate = &t
	c.UpdatedAt = when
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) UpdateSegment(customerID string, seg segment.Segment) error {
	c, ok := f.db.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Segment = seg
	return nil
}

func (f *fakeCustomers) Delete(id string) error {
	if _, ok := f.db.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.db.customers, id)
	return nil
}

type fakeSales struct{ db *memDB }

func (f *fakeSales) Create(s *entity.Sale) error {
	if _, ok := f.db.sales[s.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	f.db.sales[s.ID] = &cp
	return nil
}

func (f *fakeSales) CreateItem(item *entity.SaleItem) error {
	cp := *item
	f.db.items[item.SaleID] = append(f.db.items[item.SaleID], &cp)
	return nil
}

func (f *fakeSales) GetByID(id int64) (*entity.Sale, error) {
	s, ok := f.db.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSales) GetItemsBySaleID(saleID int64) ([]*entity.SaleItem, error) {
	list := f.db.items[saleID]
	out := make([]*entity.SaleItem, len(list))
	for i, it := range list {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeSales) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.db.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSales) MarkVoided(id int64, reason string, when time.Time) error {
	s, ok := f.db.sales[id]
	if !ok || s.Status != entity.SaleStatusCompleted {
		return domain.ErrConflict
	}
	s.Status = entity.SaleStatusVoided
	s.VoidReason = reason
	t := when
	s.VoidedAt = &t
	s.UpdatedAt = when
	return nil
}

type fakeLedger struct{ db *memDB }

func (f *fakeLedger) Create(e *entity.LedgerEntry) error {
	cp := *e
	f.db.ledger = append(f.db.ledger, &cp)
	return nil
}

func (f *fakeLedger) ListByReference(reference string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range f.db.ledger {
		if e.Reference == reference {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLedger) List(category string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range f.db.ledger {
		if category != "" && e.Category != category {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// fakeRunner simula la transacción restaurando un snapshot cuando fn falla.
type fakeRunner struct {
	db        *memDB
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	ledger    repository.LedgerRepository
}

func (r *fakeRunner) RunSale(ctx context.Context, fn func(unit pos.SaleUnit) error) error {
	snap := r.db.clone()
	if err := fn(&fakeUnit{runner: r}); err != nil {
		*r.db = *snap
		return err
	}
	return nil
}

type fakeUnit struct{ runner *fakeRunner }

func (u *fakeUnit) Sales() repository.SaleRepository         { return u.runner.sales }
func (u *fakeUnit) Products() repository.ProductRepository   { return u.runner.products }
func (u *fakeUnit) Customers() repository.CustomerRepository { return u.runner.customers }
func (u *fakeUnit) Ledger() repository.LedgerRepository      { return u.runner.ledger }

func (u *fakeUnit) Savepoint(ctx context.Context, fn func(pos.SaleUnit) error) error {
	snap := u.runner.db.clone()
	if err := fn(u); err != nil {
		*u.runner.db = *snap
		return err
	}
	return nil
}

// fakeReceiptGen evita renderizar PDFs reales en los tests de handler.
type fakeReceiptGen struct{}

func (fakeReceiptGen) GenerateReceiptPDF(_ context.Context, _ *entity.Sale, _ []*entity.SaleItem) ([]byte, error) {
	return []byte("%PDF-1.7 recibo de prueba"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la aplicación Fiber completa con el router real y
// todos los casos de uso cableados sobre los fakes en memoria.
func buildTestApp(db *memDB, policy pos.Policy) *fiber.App {
	products := &fakeProducts{db: db}
	customers := &fakeCustomers{db: db}
	sales := &fakeSales{db: db}
	ledgerRepo := &fakeLedger{db: db}
	runner := &fakeRunner{db: db, products: products, customers: customers, sales: sales, ledger: ledgerRepo}
	noop := cache.NewNoop()
	log := logger.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(products, noop),
		CustomerUC: usecase.NewCustomerUseCase(customers),
		LedgerUC:   usecase.NewLedgerUseCase(ledgerRepo),
		AdjustUC:   inventory.NewAdjustStockUseCase(products, noop, policy.AllowNegativeStock, log),
		CommitUC:   pos.NewCommitSaleUseCase(runner, products, sales, noop, policy, log),
		ReverseUC:  pos.NewReverseSaleUseCase(runner, sales, noop, log),
		ReceiptUC:  pos.NewReceiptUseCase(sales, fakeReceiptGen{}),
	})
	return app
}

func seedCatalog(db *memDB) {
	db.products["P1"] = &entity.Product{
		ID: "P1", SKU: "SKU-P1", Name: "Acetaminofén 500mg", Category: "analgésicos",
		Price: money(5000), Cost: money(3000), Quantity: 20, ReorderLevel: 5,
	}
	db.customers["C1"] = &entity.Customer{
		ID: "C1", Name: "María Gómez", Segment: segment.SegmentNew,
		TotalSpent: decimal.Zero, AverageOrderValue: decimal.Zero,
	}
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// commitBody arma una venta válida de dos unidades del producto P1.
func commitBody(customerID string) dto.CommitSaleRequest {
	return dto.CommitSaleRequest{
		CustomerID:    customerID,
		CashierID:     "caja-01",
		CashierName:   "Laura Pérez",
		PaymentMethod: "cash",
		Subtotal:      money(10000),
		Tax:           money(1900),
		Total:         money(11900),
		AmountPaid:    money(20000),
		Items: []dto.SaleItemRequest{
			{ProductID: "P1", Quantity: 2, UnitPrice: money(5000)},
		},
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests checkout y commit
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: checkout de mostrador → 201 con el resumen compacto y los efectos
// del pipeline aplicados (inventario y libro).
func TestCheckoutHTTP_VentaDeMostradorRetorna201(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/pos/checkout", commitBody(""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "el checkout válido debe responder 201")

	var out dto.CheckoutResponse
	decodeJSON(t, resp, &out)
	assert.Greater(t, out.OrderNumber, int64(0), "el número de orden debe asignarse")
	assert.Equal(t, out.TransactionID, out.OrderNumber, "transaction_id y order_number coinciden")
	assert.Equal(t, entity.SaleStatusCompleted, out.Status)
	assert.True(t, out.ChangeDue.Equal(money(8100)), "el cambio debe ser 8.100 (pagó 20.000 de 11.900)")

	assert.EqualValues(t, 18, db.products["P1"].Quantity, "el inventario debe descontarse")
	require.Len(t, db.ledger, 1, "debe asentarse el ingreso en el libro")
	assert.Equal(t, entity.LedgerCategorySales, db.ledger[0].Category)
	assert.True(t, db.ledger[0].Amount.Equal(money(11900)), "el asiento debe ser por el total")
}

// Caso 2: venta con cliente registrado vía POST /api/sales → 201 con la venta
// completa y los acumulados del cliente actualizados.
func TestCommitSaleHTTP_ClienteRegistradoRetornaVentaCompleta(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/sales", commitBody("C1"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.SaleResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "C1", out.CustomerID)
	assert.Len(t, out.Items, 1, "la respuesta completa incluye las líneas")
	assert.Equal(t, fmt.Sprintf("REF-%d", out.TransactionID), out.ReferenceNumber,
		"sin referencia explícita se genera REF-<id>")

	c := db.customers["C1"]
	assert.True(t, c.TotalSpent.Equal(money(11900)), "el gasto acumulado debe crecer")
	assert.EqualValues(t, 1, c.TotalOrders)
	assert.EqualValues(t, 11, c.LoyaltyPoints, "11.900 / 1.000 → 11 puntos")
	require.NotNil(t, c.LastOrderDate, "la fecha de última compra debe fijarse")
}

// Caso 3: body sin campos obligatorios → 400 VALIDATION con la lista de campos.
func TestCommitSaleHTTP_ValidacionRetorna400(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/sales", dto.CommitSaleRequest{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Message, "cashier_id", "el mensaje debe nombrar los campos inválidos")
	assert.Contains(t, out.Message, "items")
	assert.Contains(t, out.Fields, "cashier_id", "fields lleva la lista aparte del mensaje")
	assert.Contains(t, out.Fields, "items")
	assert.Empty(t, db.sales, "nada debe persistirse")
}

// Caso 3b: JSON malformado → 400 INVALID_BODY.
func TestCommitSaleHTTP_JSONMalformadoRetorna400(t *testing.T) {
	db := newMemDB()
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

// Caso 4: producto inexistente → 404 antes de abrir la transacción.
func TestCommitSaleHTTP_ProductoInexistenteRetorna404(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	body := commitBody("")
	body.Items[0].ProductID = "no-existe"
	resp := doJSON(t, app, http.MethodPost, "/api/sales", body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, db.sales)
}

// Caso 5: sin existencias y con la guarda activa → 409 INSUFFICIENT_STOCK.
func TestCommitSaleHTTP_SinExistenciasConGuardaRetorna409(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	db.products["P1"].Quantity = 1
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: false})

	resp := doJSON(t, app, http.MethodPost, "/api/sales", commitBody(""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
	assert.EqualValues(t, 1, db.products["P1"].Quantity, "las existencias no deben tocarse")
	assert.Empty(t, db.ledger, "el libro no debe tener asientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests devolución y recibo
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: flujo completo venta → devolución; la segunda anulación responde 409.
func TestRefundHTTP_AnulaYRechazaDobleAnulacion(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/sales", commitBody("C1"))
	var sale dto.SaleResponse
	decodeJSON(t, resp, &sale)
	resp.Body.Close()

	refundPath := fmt.Sprintf("/api/sales/%d/refund", sale.TransactionID)
	resp = doJSON(t, app, http.MethodPost, refundPath, dto.RefundRequest{Reason: "producto vencido"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "la primera devolución debe aceptarse")

	var voided dto.SaleResponse
	decodeJSON(t, resp, &voided)
	assert.Equal(t, entity.SaleStatusVoided, voided.Status)
	assert.Equal(t, "producto vencido", voided.VoidReason)

	assert.EqualValues(t, 20, db.products["P1"].Quantity, "el inventario debe reponerse")
	require.Len(t, db.ledger, 2, "venta y devolución asientan por separado")
	assert.True(t, db.ledger[1].Amount.Equal(money(-11900)), "la devolución asienta el total negado")
	assert.True(t, db.customers["C1"].TotalSpent.Equal(money(11900)),
		"los acumulados del cliente no se revierten")

	// Segunda anulación sobre la misma venta.
	resp2 := doJSON(t, app, http.MethodPost, refundPath, dto.RefundRequest{Reason: "reintento"})
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusConflict, resp2.StatusCode, "la doble anulación debe responder 409")
	assert.Len(t, db.ledger, 2, "no debe asentarse una segunda devolución")
	assert.Equal(t, "producto vencido", db.sales[sale.TransactionID].VoidReason,
		"el motivo original debe conservarse")
}

// Caso 7: devolución de una venta inexistente → 404; id no numérico → 400.
func TestRefundHTTP_VentaInexistenteEIDInvalido(t *testing.T) {
	db := newMemDB()
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/sales/999999/refund", dto.RefundRequest{Reason: "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp2 := doJSON(t, app, http.MethodPost, "/api/sales/abc/refund", dto.RefundRequest{Reason: "x"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Contains(t, string(body), "INVALID_ID")
}

// Caso 7b: devolución sin body → anulación completa; motivo y líneas son
// opcionales.
func TestRefundHTTP_SinBodyAnulaLaVentaCompleta(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/pos/checkout", commitBody(""))
	var sale dto.CheckoutResponse
	decodeJSON(t, resp, &sale)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/sales/%d/refund", sale.TransactionID), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "sin body la devolución se acepta igual")

	var voided dto.SaleResponse
	decodeJSON(t, resp, &voided)
	assert.Equal(t, entity.SaleStatusVoided, voided.Status)
	assert.Empty(t, voided.VoidReason)
	assert.EqualValues(t, 20, db.products["P1"].Quantity, "se repone la venta completa")
}

// Caso 8: descarga del recibo → 200 con application/pdf y nombre de archivo.
func TestReceiptHTTP_DescargaPDF(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/pos/checkout", commitBody(""))
	var sale dto.CheckoutResponse
	decodeJSON(t, resp, &sale)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/sales/%d/receipt", sale.TransactionID), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition),
		fmt.Sprintf("recibo_%d.pdf", sale.OrderNumber))

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")), "el cuerpo debe ser el PDF generado")

	// Recibo de una venta inexistente → 404.
	resp2 := doJSON(t, app, http.MethodGet, "/api/sales/424242/receipt", nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del resto de la superficie: ajustes, gastos y segmento
// ──────────────────────────────────────────────────────────────────────────────

// Caso 9: ajuste manual de inventario → 200 con las existencias resultantes.
func TestAdjustmentHTTP_AplicaDelta(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/adjustments", dto.AdjustStockRequest{
		ProductID:     "P1",
		DeltaQuantity: -4,
		Reason:        "conteo físico",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AdjustStockResponse
	decodeJSON(t, resp, &out)
	assert.EqualValues(t, 16, out.Quantity, "20 - 4 = 16")
	assert.EqualValues(t, 0, db.products["P1"].SalesCount, "el ajuste manual no toca sales_count")
}

// Caso 10: gasto operativo → 201 con el monto negado; categoría reservada → 400.
func TestExpenseHTTP_RegistraGastoYRechazaCategoriaReservada(t *testing.T) {
	db := newMemDB()
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPost, "/api/ledger/expenses", dto.CreateExpenseRequest{
		Category:    entity.LedgerCategoryRent,
		Description: "arriendo local agosto",
		Amount:      money(1200000),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.LedgerEntryResponse
	decodeJSON(t, resp, &out)
	assert.True(t, out.Amount.Equal(money(-1200000)), "el gasto se asienta negado")

	resp2 := doJSON(t, app, http.MethodPost, "/api/ledger/expenses", dto.CreateExpenseRequest{
		Category:    entity.LedgerCategorySales,
		Description: "no permitido",
		Amount:      money(1000),
	})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode,
		"sales está reservada al pipeline de ventas")
}

// Caso 11: override manual del segmento → 200; segmento desconocido → 400.
func TestSegmentHTTP_OverrideYRecompute(t *testing.T) {
	db := newMemDB()
	seedCatalog(db)
	app := buildTestApp(db, pos.Policy{AllowNegativeStock: true})

	resp := doJSON(t, app, http.MethodPut, "/api/customers/C1/segment",
		dto.OverrideSegmentRequest{Segment: "vip"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, segment.SegmentVIP, db.customers["C1"].Segment)

	resp2 := doJSON(t, app, http.MethodPut, "/api/customers/C1/segment",
		dto.OverrideSegmentRequest{Segment: "platino"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode, "segmento desconocido debe rechazarse")

	// El recálculo con acumulados en cero vuelve a derivar "new".
	resp3 := doJSON(t, app, http.MethodPost, "/api/customers/C1/segment/recompute", nil)
	defer resp3.Body.Close()

	require.Equal(t, http.StatusOK, resp3.StatusCode)
	var out dto.SegmentResponse
	decodeJSON(t, resp3, &out)
	assert.Equal(t, string(segment.SegmentNew), out.Segment,
		"sin compras el recálculo degrada el override a new")
}
