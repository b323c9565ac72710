package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/infrastructure/cache"
)

// ProductUseCase casos de uso CRUD para el catálogo. Quantity y SalesCount se
// manejan vía el ajustador de inventario y los pipelines de venta; el CRUD
// solo fija las existencias iniciales al crear.
type ProductUseCase struct {
	repo         repository.ProductRepository
	productCache cache.ProductCache
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, productCache cache.ProductCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, productCache: productCache}
}

// Create crea un producto nuevo. El SKU debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                   uuid.New().String(),
		SKU:                  in.SKU,
		Barcode:              in.Barcode,
		Name:                 in.Name,
		Category:             in.Category,
		Description:          in.Description,
		Price:                in.Price,
		Cost:                 in.Cost,
		Quantity:             in.Quantity,
		ReorderLevel:         in.ReorderLevel,
		RequiresPrescription: in.RequiresPrescription,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto, primero del caché y si no de la base.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if cached, _ := uc.productCache.Get(ctx, id); cached != nil {
		return toProductResponse(cached), nil
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	_ = uc.productCache.Set(ctx, product)
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo. No permite modificar Quantity ni
// SalesCount (van por el ajustador).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.ReorderLevel != nil {
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.RequiresPrescription != nil {
		product.RequiresPrescription = *in.RequiresPrescription
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	_ = uc.productCache.Delete(ctx, id)
	return toProductResponse(product), nil
}

// List lista productos con filtros opcionales de categoría y bajo stock
// (quantity <= reorder_level).
func (uc *ProductUseCase) List(ctx context.Context, category string, lowStockOnly bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(category, lowStockOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	_ = uc.productCache.Delete(ctx, id)
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                   p.ID,
		SKU:                  p.SKU,
		Barcode:              p.Barcode,
		Name:                 p.Name,
		Category:             p.Category,
		Description:          p.Description,
		Price:                p.Price,
		Cost:                 p.Cost,
		Quantity:             p.Quantity,
		SalesCount:           p.SalesCount,
		ReorderLevel:         p.ReorderLevel,
		RequiresPrescription: p.RequiresPrescription,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
