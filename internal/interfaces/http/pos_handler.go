package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
)

// POSHandler expone el checkout de caja. Comparte el pipeline de commit con
// POST /api/sales pero responde el resumen compacto que la caja necesita
// para imprimir el turno y entregar el cambio.
type POSHandler struct {
	commit *pos.CommitSaleUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(commit *pos.CommitSaleUseCase) *POSHandler {
	return &POSHandler{commit: commit}
}

// Checkout godoc
// @Summary      Checkout de caja
// @Description  Mismo pipeline que POST /api/sales; responde solo el número de
// @Description  orden, el total y el cambio a entregar.
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitSaleRequest  true  "Venta a confirmar"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.commit.CommitSale(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{
		TransactionID:   sale.TransactionID,
		OrderNumber:     sale.OrderNumber,
		ReferenceNumber: sale.ReferenceNumber,
		Status:          sale.Status,
		Total:           sale.Total,
		AmountPaid:      sale.AmountPaid,
		ChangeDue:       sale.ChangeDue,
	})
}
