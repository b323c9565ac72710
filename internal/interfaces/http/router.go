package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdramirez/farmapos-api/internal/application/inventory"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
	"github.com/jdramirez/farmapos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	LedgerUC   *usecase.LedgerUseCase
	AdjustUC   *inventory.AdjustStockUseCase
	CommitUC   *pos.CommitSaleUseCase
	ReverseUC  *pos.ReverseSaleUseCase
	ReceiptUC  *pos.ReceiptUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Ajustes manuales de inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustUC)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)

	// Clientes y segmentación
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Put("/:id/segment", customerHandler.OverrideSegment)
	customers.Post("/:id/segment/recompute", customerHandler.RecomputeSegment)

	// Ventas: commit, consulta, devolución y recibo
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CommitUC, deps.ReverseUC, deps.ReceiptUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Post("/:id/refund", saleHandler.Refund)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Checkout de caja (respuesta compacta)
	posGroup := api.Group("/pos")
	posHandler := NewPOSHandler(deps.CommitUC)
	posGroup.Post("/checkout", posHandler.Checkout)

	// Libro contable
	ledger := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledger.Post("/expenses", ledgerHandler.RecordExpense)
	ledger.Get("/", ledgerHandler.List)
	ledger.Get("/reference/:ref", ledgerHandler.ListByReference)
}
