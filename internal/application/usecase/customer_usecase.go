package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
)

// CustomerUseCase casos de uso CRUD para clientes, más las dos operaciones de
// segmento: fijarlo a mano (escape del motor de reglas) y recalcularlo desde
// los acumulados guardados. Los acumulados mismos solo los escribe el
// pipeline de ventas.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente nuevo. Todo cliente nace en el segmento "new" con
// acumulados en cero.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       in.Name,
		DocumentID: in.DocumentID,
		Email:      in.Email,
		Phone:      in.Phone,
		Segment:    segment.SegmentNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza datos de contacto. El segmento y los acumulados tienen sus
// propias operaciones.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.DocumentID != nil {
		customer.DocumentID = *in.DocumentID
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// OverrideSegment fija el segmento a mano, sin evaluar reglas. La siguiente
// venta del cliente lo vuelve a derivar desde los acumulados.
func (uc *CustomerUseCase) OverrideSegment(ctx context.Context, id string, in dto.OverrideSegmentRequest) (*dto.SegmentResponse, error) {
	seg := segment.Segment(in.Segment)
	if !segment.Valid(seg) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateSegment(id, seg); err != nil {
		return nil, err
	}
	return &dto.SegmentResponse{CustomerID: id, Segment: string(seg)}, nil
}

// RecomputeSegment vuelve a derivar el segmento desde los acumulados
// guardados y lo persiste solo si cambió.
func (uc *CustomerUseCase) RecomputeSegment(ctx context.Context, id string) (*dto.SegmentResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	seg := segment.Classify(customer.TotalSpent, customer.TotalOrders,
		customer.LoyaltyPoints, customer.LastOrderDate)
	if seg != customer.Segment {
		if err := uc.repo.UpdateSegment(id, seg); err != nil {
			return nil, err
		}
	}
	return &dto.SegmentResponse{CustomerID: id, Segment: string(seg)}, nil
}

// Delete elimina un cliente por ID. Sus ventas históricas conservan el nombre
// congelado en la cabecera.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:                c.ID,
		Name:              c.Name,
		DocumentID:        c.DocumentID,
		Email:             c.Email,
		Phone:             c.Phone,
		Segment:           string(c.Segment),
		TotalSpent:        c.TotalSpent,
		TotalOrders:       c.TotalOrders,
		AverageOrderValue: c.AverageOrderValue,
		LoyaltyPoints:     c.LoyaltyPoints,
		LastOrderDate:     c.LastOrderDate,
		CreatedAt:         c.CreatedAt,
	}
}
