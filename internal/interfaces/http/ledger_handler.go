package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/application/usecase"
)

// LedgerHandler maneja las consultas del libro contable y el registro de
// gastos. Las ventas y devoluciones asientan desde su propio pipeline; por
// aquí solo entran egresos operativos.
type LedgerHandler struct {
	uc *usecase.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// RecordExpense godoc
// @Summary      Registrar un gasto operativo
// @Description  El monto llega positivo y se asienta negado. Las categorías
// @Description  sales y refunds están reservadas para el pipeline de ventas.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto a registrar"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ledger/expenses [post]
func (h *LedgerHandler) RecordExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordExpense(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asientos del libro
// @Tags         ledger
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        from      query  string  false  "Fecha inicial (RFC3339)"
// @Param        to        query  string  false  "Fecha final (RFC3339)"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.Normalize()

	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from debe ser RFC3339"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "to debe ser RFC3339"})
	}

	out, err := h.uc.List(c.Context(), c.Query("category"), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByReference godoc
// @Summary      Asientos de una referencia
// @Description  Agrupa el ingreso de la venta y el egreso de su devolución
// @Description  bajo la misma referencia REF-<id>.
// @Tags         ledger
// @Produce      json
// @Param        ref  path  string  true  "Número de referencia"
// @Success      200  {object}  dto.LedgerListResponse
// @Router       /api/ledger/reference/{ref} [get]
func (h *LedgerHandler) ListByReference(c *fiber.Ctx) error {
	out, err := h.uc.ListByReference(c.Context(), c.Params("ref"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery interpreta un parámetro de fecha opcional. Vacío → nil.
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
