package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

// LedgerUseCase lecturas del libro contable y registro de gastos operativos.
// Los asientos de ventas y devoluciones los escriben los pipelines de caja;
// por aquí solo entran egresos (inventory, utilities, rent, salaries,
// marketing, other).
type LedgerUseCase struct {
	repo repository.LedgerRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{repo: repo}
}

// RecordExpense registra un gasto operativo. El monto llega positivo y se
// persiste negado; las categorías sales y refunds están reservadas a los
// pipelines.
func (uc *LedgerUseCase) RecordExpense(ctx context.Context, in dto.CreateExpenseRequest) (*dto.LedgerEntryResponse, error) {
	var fields []string
	if !entity.IsExpenseCategory(in.Category) {
		fields = append(fields, "category")
	}
	if in.Description == "" {
		fields = append(fields, "description")
	}
	if !in.Amount.IsPositive() {
		fields = append(fields, "amount")
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount.Neg(),
		Reference:   in.Reference,
		Date:        now,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(entry); err != nil {
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

// List lista asientos con filtros opcionales de categoría y rango de fechas.
func (uc *LedgerUseCase) List(ctx context.Context, category string, from, to *time.Time, limit, offset int) (*dto.LedgerListResponse, error) {
	list, err := uc.repo.List(category, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByReference lista los asientos atados a una referencia (la venta y su
// eventual devolución comparten REF-<id>).
func (uc *LedgerUseCase) ListByReference(ctx context.Context, reference string) (*dto.LedgerListResponse, error) {
	list, err := uc.repo.ListByReference(reference)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Offset: 0},
	}, nil
}

func toLedgerEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:            e.ID,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		Reference:     e.Reference,
		PaymentMethod: e.PaymentMethod,
		Date:          e.Date,
	}
}
