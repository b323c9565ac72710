package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/application/pos"
)

// SaleHandler maneja las peticiones HTTP de ventas: commit, consulta,
// devolución y recibo.
type SaleHandler struct {
	commit  *pos.CommitSaleUseCase
	reverse *pos.ReverseSaleUseCase
	receipt *pos.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(commit *pos.CommitSaleUseCase, reverse *pos.ReverseSaleUseCase, receipt *pos.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{commit: commit, reverse: reverse, receipt: receipt}
}

// saleID extrae y valida el ID numérico de la ruta.
func saleID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id de venta inválido: %q", c.Params("id"))
	}
	return id, nil
}

// Create godoc
// @Summary      Confirmar una venta
// @Description  Ejecuta el pipeline completo en una transacción: persiste la
// @Description  venta y sus líneas, descuenta inventario, actualiza los
// @Description  acumulados y el segmento del cliente (si no es de mostrador)
// @Description  y asienta el ingreso en el libro contable.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitSaleRequest  true  "Venta a confirmar"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.commit.CommitSale(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	out, err := h.commit.GetSale(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Description  Devuelve solo cabeceras, ordenadas de la más reciente a la más
// @Description  antigua; las líneas se consultan por venta.
// @Tags         sales
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.Normalize()
	out, err := h.commit.ListSales(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Refund godoc
// @Summary      Anular una venta con devolución
// @Description  Marca la venta como anulada, repone el inventario (total o
// @Description  según las cantidades indicadas) y asienta el egreso en el
// @Description  libro. Los acumulados del cliente no se revierten. Una venta
// @Description  ya anulada responde 409.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.RefundRequest  false  "Motivo y reposición parcial opcional"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/refund [post]
func (h *SaleHandler) Refund(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	// Motivo y líneas son opcionales: sin body se anula la venta completa.
	var in dto.RefundRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.reverse.ReverseSale(c.Context(), id, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar el recibo de una venta en PDF
// @Description  Las ventas anuladas también tienen recibo; el PDF las marca
// @Description  como ANULADA.
// @Tags         sales
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	pdfBytes, filename, err := h.receipt.DownloadReceiptPDF(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
