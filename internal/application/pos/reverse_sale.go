package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/cache"
	"github.com/jdramirez/farmapos-api/pkg/logger"
)

// ReverseSaleUseCase anula una venta confirmada: marca la cabecera como
// anulada, repone inventario y registra el asiento de devolución. Los
// acumulados del cliente no se revierten; el libro contable es solo-agregar.
type ReverseSaleUseCase struct {
	txRunner     SaleTxRunner
	saleRepo     repository.SaleRepository
	productCache cache.ProductCache
	log          *logger.Logger
}

// NewReverseSaleUseCase construye el caso de uso.
func NewReverseSaleUseCase(
	txRunner SaleTxRunner,
	saleRepo repository.SaleRepository,
	productCache cache.ProductCache,
	log *logger.Logger,
) *ReverseSaleUseCase {
	return &ReverseSaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productCache: productCache,
		log:          log,
	}
}

// restock es una línea del plan de reposición: cuánto devolver al inventario
// por producto.
type restock struct {
	productID string
	quantity  int64
}

// ReverseSale anula la venta indicada. Si el request trae líneas, solo esas
// cantidades vuelven al inventario; sin líneas se repone la venta completa.
// El asiento de devolución siempre registra el total original en negativo,
// bajo la misma referencia de la venta.
func (uc *ReverseSaleUseCase) ReverseSale(ctx context.Context, saleID int64, in dto.RefundRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusVoided {
		return nil, domain.ErrConflict
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}

	plan, err := buildRestockPlan(items, in.Items)
	if err != nil {
		return nil, err
	}

	// La devolución asienta bajo la misma referencia de la venta, de modo
	// que agrupar el libro por referencia dé el efecto neto de caja (cero
	// tras anular). REF-<id> queda solo como respaldo de filas sin referencia.
	now := time.Now()
	refundRef := sale.ReferenceNumber
	if refundRef == "" {
		refundRef = fmt.Sprintf("REF-%d", saleID)
	}
	description := "Devolución " + refundRef
	if in.Reason != "" {
		description += ": " + in.Reason
	}

	err = uc.txRunner.RunSale(ctx, func(unit SaleUnit) error {
		// El UPDATE condicionado por estado cierra la carrera entre dos
		// anulaciones concurrentes: solo una ve filas afectadas.
		if err := unit.Sales().MarkVoided(saleID, in.Reason, now); err != nil {
			return err
		}
		for _, r := range plan {
			if err := unit.Products().AdjustStock(r.productID, r.quantity, 0); err != nil {
				return err
			}
		}
		return unit.Ledger().Create(&entity.LedgerEntry{
			ID:            uuid.New().String(),
			Category:      entity.LedgerCategoryRefunds,
			Description:   description,
			Amount:        sale.Total.Neg(),
			Reference:     refundRef,
			PaymentMethod: sale.PaymentMethod,
			Date:          now,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProducts(ctx, plan)

	sale.Status = entity.SaleStatusVoided
	sale.VoidReason = in.Reason
	sale.VoidedAt = &now
	sale.UpdatedAt = now
	return toSaleResponse(sale, items), nil
}

// buildRestockPlan arma el plan de reposición. Sin overrides repone cada
// línea completa; con overrides valida que cada producto pertenezca a la
// venta y que lo repuesto por producto, sumando líneas repetidas, no exceda
// lo vendido.
func buildRestockPlan(items []*entity.SaleItem, overrides []dto.RefundItemOverride) ([]restock, error) {
	// remainingByProduct arranca en lo vendido y se descuenta con cada
	// override consumido; así las líneas repetidas de un mismo producto no
	// pueden reponer más unidades de las que salieron.
	remainingByProduct := make(map[string]int64, len(items))
	for _, item := range items {
		remainingByProduct[item.ProductID] += item.Quantity
	}

	if len(overrides) == 0 {
		plan := make([]restock, 0, len(items))
		for _, item := range items {
			plan = append(plan, restock{productID: item.ProductID, quantity: item.Quantity})
		}
		return plan, nil
	}

	var fields []string
	plan := make([]restock, 0, len(overrides))
	for i, ov := range overrides {
		remaining, ok := remainingByProduct[ov.ProductID]
		if ov.ProductID == "" || !ok {
			fields = append(fields, fmt.Sprintf("items[%d].product_id", i))
			continue
		}
		if ov.Quantity <= 0 || ov.Quantity > remaining {
			fields = append(fields, fmt.Sprintf("items[%d].quantity", i))
			continue
		}
		remainingByProduct[ov.ProductID] = remaining - ov.Quantity
		plan = append(plan, restock{productID: ov.ProductID, quantity: ov.Quantity})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}
	return plan, nil
}

func (uc *ReverseSaleUseCase) invalidateProducts(ctx context.Context, plan []restock) {
	ids := make([]string, 0, len(plan))
	for _, r := range plan {
		ids = append(ids, r.productID)
	}
	if err := uc.productCache.Delete(ctx, ids...); err != nil {
		uc.log.Debug().Err(err).Msg("invalidación de caché de productos fallida")
	}
}
