package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/cache"
	"github.com/jdramirez/farmapos-api/pkg/logger"
)

// CommitSaleUseCase confirma una venta: cabecera, líneas, descuento de
// inventario, acumulados del cliente y asiento contable en una sola
// transacción. Es el único pipeline de commit; POST /api/sales y
// POST /api/pos/checkout son dos entradas delgadas sobre él.
type CommitSaleUseCase struct {
	txRunner     SaleTxRunner
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	productCache cache.ProductCache
	policy       Policy
	log          *logger.Logger
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(
	txRunner SaleTxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	productCache cache.ProductCache,
	policy Policy,
	log *logger.Logger,
) *CommitSaleUseCase {
	return &CommitSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		productCache: productCache,
		policy:       policy,
		log:          log,
	}
}

// CommitSale valida la entrada, congela los datos de catálogo y confirma la
// venta de forma atómica. El sub-paso de cliente (acumulados y segmento) corre
// en un savepoint: si falla se registra en el log y la venta continúa.
func (uc *CommitSaleUseCase) CommitSale(ctx context.Context, in dto.CommitSaleRequest) (*dto.SaleResponse, error) {
	// 1) Validación estructural, antes de tocar el almacenamiento.
	if err := validateCommit(in); err != nil {
		return nil, err
	}

	// 2) Validar productos y congelar nombre/categoría (fuera de la tx, solo lectura).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
		if _, ok := productsByID[item.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
	}

	// 3) Identificadores derivados del instante del commit: el ID de la venta
	// son los segundos Unix y coincide con el número de orden.
	now := time.Now()
	ts := now.Unix()
	ref := in.ReferenceNumber
	if ref == "" {
		ref = fmt.Sprintf("REF-%d", ts)
	}

	// El vuelto lo puede fijar la caja; si no viene se calcula y nunca
	// se persiste negativo.
	changeDue := in.ChangeAmount
	if !changeDue.IsPositive() {
		changeDue = in.AmountPaid.Sub(in.Total)
		if changeDue.IsNegative() {
			changeDue = decimal.Zero
		}
	}

	sale := &entity.Sale{
		ID:              ts,
		OrderNumber:     ts,
		ReferenceNumber: ref,
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CashierID:       in.CashierID,
		CashierName:     in.CashierName,
		Subtotal:        in.Subtotal,
		Discount:        in.Discount,
		Tax:             in.Tax,
		Total:           in.Total,
		AmountPaid:      in.AmountPaid,
		ChangeDue:       changeDue,
		PaymentMethod:   in.PaymentMethod,
		PaymentInfo:     in.PaymentInfo,
		Till:            in.Till,
		Status:          entity.SaleStatusCompleted,
		Date:            now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		name := item.ProductName
		if name == "" {
			name = product.Name
		}
		category := item.Category
		if category == "" {
			category = product.Category
		}
		items = append(items, &entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   item.ProductID,
			ProductName: name,
			Category:    category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
		})
	}

	err := uc.txRunner.RunSale(ctx, func(unit SaleUnit) error {
		// 4) Cabecera y líneas; por cada línea se descuenta inventario y se
		// incrementa el contador de ventas. Cualquier fallo revierte todo.
		if err := unit.Sales().Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := unit.Sales().CreateItem(item); err != nil {
				return err
			}
			if err := uc.adjustForSale(unit, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		// 5) Sub-paso de cliente, no-fatal: acumulados en un solo UPDATE
		// relativo, clasificación sobre la fila fresca y persistencia del
		// segmento. Un fallo aquí revierte solo el savepoint.
		if !entity.IsWalkIn(in.CustomerID) {
			points := segment.PointsForPurchase(in.Total)
			spErr := unit.Savepoint(ctx, func(su SaleUnit) error {
				customer, err := su.Customers().ApplyPurchase(in.CustomerID, in.Total, points, now)
				if err != nil {
					return err
				}
				if customer == nil {
					return domain.ErrNotFound
				}
				seg := segment.ClassifyAt(now, customer.TotalSpent, customer.TotalOrders,
					customer.LoyaltyPoints, customer.LastOrderDate)
				if seg == customer.Segment {
					return nil
				}
				return su.Customers().UpdateSegment(in.CustomerID, seg)
			})
			if spErr != nil {
				uc.log.Warn().Err(spErr).
					Str("customer_id", in.CustomerID).
					Int64("sale_id", sale.ID).
					Msg("actualización de cliente omitida; la venta continúa")
			}
		}

		// 6) Asiento contable de la venta (ingreso, monto positivo).
		return unit.Ledger().Create(&entity.LedgerEntry{
			ID:            uuid.New().String(),
			Category:      entity.LedgerCategorySales,
			Description:   "Venta " + ref,
			Amount:        in.Total,
			Reference:     ref,
			PaymentMethod: in.PaymentMethod,
			Date:          now,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	// El catálogo cambió de existencias: invalidar el caché de los productos vendidos.
	uc.invalidateProducts(ctx, items)

	return toSaleResponse(sale, items), nil
}

// adjustForSale descuenta existencias y suma al contador de ventas según la
// política de sobreventa.
func (uc *CommitSaleUseCase) adjustForSale(unit SaleUnit, productID string, quantity int64) error {
	if uc.policy.AllowNegativeStock {
		return unit.Products().AdjustStock(productID, -quantity, quantity)
	}
	return unit.Products().AdjustStockGuarded(productID, -quantity, quantity)
}

func (uc *CommitSaleUseCase) invalidateProducts(ctx context.Context, items []*entity.SaleItem) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	if err := uc.productCache.Delete(ctx, ids...); err != nil {
		uc.log.Debug().Err(err).Msg("invalidación de caché de productos fallida")
	}
}

// GetSale obtiene una venta con sus líneas.
func (uc *CommitSaleUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista ventas recientes (solo cabeceras, sin líneas).
func (uc *CommitSaleUseCase) ListSales(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// validateCommit acumula todos los campos faltantes o inválidos para
// reportarlos juntos en un solo ValidationError.
func validateCommit(in dto.CommitSaleRequest) error {
	var fields []string
	if in.Subtotal.IsZero() {
		fields = append(fields, "subtotal")
	}
	if in.Total.IsZero() {
		fields = append(fields, "total")
	}
	if in.AmountPaid.IsZero() {
		fields = append(fields, "amount_paid")
	}
	if in.CashierID == "" {
		fields = append(fields, "cashier_id")
	}
	if in.CashierName == "" {
		fields = append(fields, "cashier_name")
	}
	if len(in.Items) == 0 {
		fields = append(fields, "items")
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			fields = append(fields, fmt.Sprintf("items[%d].product_id", i))
		}
		if item.Quantity <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].quantity", i))
		}
		if item.UnitPrice.IsNegative() {
			fields = append(fields, fmt.Sprintf("items[%d].unit_price", i))
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		TransactionID:   sale.ID,
		OrderNumber:     sale.OrderNumber,
		ReferenceNumber: sale.ReferenceNumber,
		CustomerID:      sale.CustomerID,
		CustomerName:    sale.CustomerName,
		CashierID:       sale.CashierID,
		CashierName:     sale.CashierName,
		PaymentMethod:   sale.PaymentMethod,
		Status:          sale.Status,
		VoidReason:      sale.VoidReason,
		Subtotal:        sale.Subtotal,
		Discount:        sale.Discount,
		Tax:             sale.Tax,
		Total:           sale.Total,
		AmountPaid:      sale.AmountPaid,
		ChangeDue:       sale.ChangeDue,
		PaymentInfo:     sale.PaymentInfo,
		Till:            sale.Till,
		Date:            sale.Date.Format(time.RFC3339),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}
