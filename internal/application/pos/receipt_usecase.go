package pos

import (
	"context"
	"fmt"

	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo en PDF de una venta ya confirmada. Las
// ventas anuladas también tienen recibo; el PDF las marca como ANULADA.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(saleRepo repository.SaleRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator}
}

// DownloadReceiptPDF recupera la venta con sus líneas y genera el recibo.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, saleID int64) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar venta ───────────────────────────────────────────────────────
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar líneas ──────────────────────────────────────────────────────
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener líneas: %w", err)
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, items)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("recibo_%d.pdf", sale.OrderNumber)
	return pdfBytes, filename, nil
}
