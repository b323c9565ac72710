package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/application/inventory"
)

// InventoryHandler maneja los ajustes manuales de existencias.
type InventoryHandler struct {
	adjust *inventory.AdjustStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust}
}

// AdjustStock godoc
// @Summary      Ajustar existencias de un producto
// @Description  Corrección manual relativa (merma, daño, conteo físico). El
// @Description  delta se suma a las existencias actuales; no toca el contador
// @Description  de ventas.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, delta_quantity (≠ 0) y motivo"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.adjust.AdjustStock(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
