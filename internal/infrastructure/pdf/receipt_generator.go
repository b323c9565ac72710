// Package pdf genera los recibos de venta en PDF usando maroto v2.
//
// El recibo sigue un diseño de una sola columna pensado para impresión
// en carta o reimpresión desde caja:
//
//	┌──────────────────────────────────────────────┐
//	│ FARMAPOS                        ORDEN N° 1712│
//	│ Recibo de venta                 12/05/2025   │
//	│──────────────────────────────────────────────│
//	│ Atendido por: Laura P.   Cliente: mostrador  │
//	│──────────────────────────────────────────────│
//	│ Cant  Producto            P.Unit    Subtotal │
//	│  2    Acetaminofén 500mg   5.000      10.000 │
//	│──────────────────────────────────────────────│
//	│                        Subtotal:      10.000 │
//	│                        TOTAL:         11.900 │
//	│                        Pagado:        20.000 │
//	│                        Cambio:         8.100 │
//	│ [QR ref]   Conserve este recibo para cambios │
//	└──────────────────────────────────────────────┘
//
// Las ventas anuladas llevan un bloque ANULADA con el motivo; el recibo
// se puede reimprimir igual para soportar reclamos.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jdramirez/farmapos-api/internal/application/pos"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 112, Blue: 70}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
	colorDanger  = &props.Color{Red: 190, Green: 32, Blue: 38}
)

// ReceiptGenerator implementa la generación de recibos con maroto v2.
type ReceiptGenerator struct {
	footer string
}

var _ pos.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// NewReceiptGenerator crea el generador. El texto de pie de página es
// configurable por farmacia (horarios, teléfono, política de cambios).
func NewReceiptGenerator(footer string) *ReceiptGenerator {
	return &ReceiptGenerator{footer: footer}
}

// GenerateReceiptPDF arma el documento y devuelve los bytes del PDF.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithRightMargin(12).
		WithTopMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Recibo de venta %d", sale.OrderNumber), true).
		WithAuthor("FarmaPOS", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(separator())
	m.AddRows(g.attendedRow(sale))
	if sale.Status == entity.SaleStatusVoided {
		m.AddRows(g.voidedRow(sale))
	}
	m.AddRows(separator())
	m.AddRows(g.itemsHeaderRow())
	m.AddRows(g.itemRows(items)...)
	m.AddRows(separator())
	m.AddRows(g.totalsRow(sale))
	m.AddRows(separator())
	m.AddRows(g.footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow pinta el nombre de la farmacia a la izquierda y el número de
// orden con la fecha a la derecha.
func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("FARMAPOS", props.Text{
				Style: fontstyle.Bold,
				Size:  14,
				Color: colorPrimary,
				Top:   1,
			}),
			text.New("Recibo de venta", props.Text{
				Size:  9,
				Color: colorGray,
				Top:   9,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("ORDEN N° %d", sale.OrderNumber), props.Text{
				Style: fontstyle.Bold,
				Size:  11,
				Align: align.Right,
				Top:   1,
			}),
			text.New(sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size:  9,
				Align: align.Right,
				Color: colorGray,
				Top:   8,
			}),
			text.New("Ref: "+sale.ReferenceNumber, props.Text{
				Size:  8,
				Align: align.Right,
				Color: colorGray,
				Top:   13,
			}),
		),
	)
}

// attendedRow muestra cajero y cliente. Las ventas de mostrador no tienen
// cliente registrado.
func (g *ReceiptGenerator) attendedRow(sale *entity.Sale) core.Row {
	customer := "Cliente de mostrador"
	if !entity.IsWalkIn(sale.CustomerID) {
		customer = nonEmpty(sale.CustomerName, sale.CustomerID)
	}
	attended := "Atendido por: " + nonEmpty(sale.CashierName, sale.CashierID)
	if sale.Till != "" {
		attended += " · " + sale.Till
	}
	return row.New(8).Add(
		col.New(6).Add(
			text.New(attended, props.Text{
				Size: 9,
				Top:  2,
			}),
		),
		col.New(6).Add(
			text.New("Cliente: "+customer, props.Text{
				Size:  9,
				Align: align.Right,
				Top:   2,
			}),
		),
	)
}

// voidedRow marca la venta como anulada con su motivo.
func (g *ReceiptGenerator) voidedRow(sale *entity.Sale) core.Row {
	detail := "Venta anulada"
	if sale.VoidedAt != nil {
		detail = "Venta anulada el " + sale.VoidedAt.Format("02/01/2006 15:04")
	}
	if strings.TrimSpace(sale.VoidReason) != "" {
		detail += " · Motivo: " + sale.VoidReason
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("*** ANULADA ***", props.Text{
				Style: fontstyle.Bold,
				Size:  12,
				Align: align.Center,
				Color: colorDanger,
				Top:   1,
			}),
			text.New(detail, props.Text{
				Size:  8,
				Align: align.Center,
				Color: colorDanger,
				Top:   7,
			}),
		),
	)
}

func (g *ReceiptGenerator) itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold,
			Size:  9,
			Align: a,
			Color: colorPrimary,
			Top:   1,
		}))
	}
	return row.New(7).Add(
		h("Cant", 1, align.Left),
		h("Producto", 6, align.Left),
		h("P.Unit", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *ReceiptGenerator) itemRows(items []*entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if it.Category != "" {
			name = fmt.Sprintf("%s (%s)", it.ProductName, it.Category)
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{
				Size: 9,
				Top:  1,
			})),
			col.New(6).Add(text.New(name, props.Text{
				Size: 9,
				Top:  1,
			})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice.StringFixed(0)), props.Text{
				Size:  9,
				Align: align.Right,
				Top:   1,
			})),
			col.New(3).Add(text.New(formatMoney(it.Subtotal.StringFixed(0)), props.Text{
				Size:  9,
				Align: align.Right,
				Top:   1,
			})),
		))
	}
	return rows
}

// totalsRow apila los totales a la derecha: subtotal, descuento e impuesto,
// el total en grande y el detalle del pago.
func (g *ReceiptGenerator) totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Color: colorGray, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(formatMoney(s), props.Text{Size: 9, Align: align.Right, Top: top})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 16,
	})
	grandValue := text.New(formatMoney(sale.Total.StringFixed(0)), props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 16,
	})

	return row.New(36).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Descuento:", 6),
			label("Impuesto:", 11),
			grandLabel,
			label(fmt.Sprintf("Pagado (%s):", paymentLabel(sale.PaymentMethod)), 24),
			label("Cambio:", 29),
		),
		col.New(3).Add(
			value(sale.Subtotal.StringFixed(0), 1),
			value(sale.Discount.Neg().StringFixed(0), 6),
			value(sale.Tax.StringFixed(0), 11),
			grandValue,
			value(sale.AmountPaid.StringFixed(0), 24),
			value(sale.ChangeDue.StringFixed(0), 29),
		),
	)
}

// footerRow incluye un QR con la referencia (la caja lo escanea para ubicar
// la venta en devoluciones) y la leyenda configurada por la farmacia.
func (g *ReceiptGenerator) footerRow(sale *entity.Sale) core.Row {
	legend := "Conserve este recibo para cambios y devoluciones."
	if g.footer != "" {
		legend += "\n" + g.footer
	}
	return row.New(22).Add(
		col.New(3).Add(
			code.NewQr(sale.ReferenceNumber, props.Rect{
				Left:    2,
				Top:     2,
				Percent: 90,
			}),
		),
		col.New(9).Add(
			text.New(legend, props.Text{
				Size:  8,
				Color: colorGray,
				Top:   4,
			}),
			text.New(fmt.Sprintf("Generado por FarmaPOS · %s", time.Now().Format("02/01/2006 15:04")), props.Text{
				Size:  7,
				Color: colorGray,
				Top:   16,
			}),
		),
	)
}

func separator() core.Row {
	return line.NewRow(2, props.Line{
		Color:     colorGray,
		Thickness: 0.3,
	})
}

// nonEmpty devuelve s, o fallback si s está vacío.
func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// paymentLabel traduce el método de pago para el recibo.
func paymentLabel(method string) string {
	switch method {
	case "cash":
		return "efectivo"
	case "card":
		return "tarjeta"
	case "transfer":
		return "transferencia"
	case "credit":
		return "crédito"
	default:
		return method
	}
}

// formatMoney agrega separador de miles a un monto ya redondeado:
// "25000" → "25.000". Los montos negativos conservan el signo.
func formatMoney(amount string) string {
	neg := strings.HasPrefix(amount, "-")
	digits := strings.TrimPrefix(amount, "-")
	if len(digits) <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
