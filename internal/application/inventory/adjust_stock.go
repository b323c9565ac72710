// Package inventory expone las correcciones manuales de existencias
// (merma, daño, conteo físico). Las ventas y devoluciones ajustan el
// inventario por su cuenta dentro de sus propias transacciones; este caso de
// uso cubre solo los ajustes operativos hechos a mano.
package inventory

import (
	"context"

	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/cache"
	"github.com/jdramirez/farmapos-api/pkg/logger"
)

// AdjustStockUseCase aplica un delta relativo sobre las existencias de un
// producto. El contador de ventas nunca se toca desde aquí.
type AdjustStockUseCase struct {
	productRepo        repository.ProductRepository
	productCache       cache.ProductCache
	allowNegativeStock bool
	log                *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	productRepo repository.ProductRepository,
	productCache cache.ProductCache,
	allowNegativeStock bool,
	log *logger.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		productRepo:        productRepo,
		productCache:       productCache,
		allowNegativeStock: allowNegativeStock,
		log:                log,
	}
}

// AdjustStock valida la entrada y aplica el delta en un solo UPDATE relativo.
// Con la política de existencias negativas desactivada, un delta que dejaría
// el inventario bajo cero falla con ErrInsufficientStock.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	var fields []string
	if in.ProductID == "" {
		fields = append(fields, "product_id")
	}
	if in.DeltaQuantity == 0 {
		fields = append(fields, "delta_quantity")
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	var err error
	if uc.allowNegativeStock {
		err = uc.productRepo.AdjustStock(in.ProductID, in.DeltaQuantity, 0)
	} else {
		err = uc.productRepo.AdjustStockGuarded(in.ProductID, in.DeltaQuantity, 0)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.productCache.Delete(ctx, in.ProductID); err != nil {
		uc.log.Debug().Err(err).Msg("invalidación de caché de productos fallida")
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Int64("delta", in.DeltaQuantity).
		Str("reason", in.Reason).
		Msg("ajuste manual de inventario")

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AdjustStockResponse{
		ProductID: product.ID,
		Quantity:  product.Quantity,
	}, nil
}
