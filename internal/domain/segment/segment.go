// Package segment clasifica clientes en segmentos de marketing a partir de
// sus acumulados de compra. La clasificación es una función pura: no lee ni
// escribe almacenamiento, solo evalúa reglas en orden de precedencia.
package segment

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Segment segmento de marketing de un cliente.
type Segment string

// Segmentos válidos. El primero que aplica gana (evaluación en este orden:
// vip, loyal, regular, inactive, new).
const (
	SegmentVIP      Segment = "vip"
	SegmentLoyal    Segment = "loyal"
	SegmentRegular  Segment = "regular"
	SegmentInactive Segment = "inactive"
	SegmentNew      Segment = "new"
)

// Umbrales de clasificación.
const (
	vipPointsThreshold = 1000
	vipOrdersThreshold = 50

	loyalOrdersMin = 10
	loyalPointsMin = 200
	loyalMaxDays   = 60

	regularOrdersMin = 3
	regularMaxDays   = 90

	inactiveMinDays = 180
)

var (
	vipSpentThreshold = decimal.NewFromInt(1_000_000)
	pointsUnit        = decimal.NewFromInt(1000)
)

// Classify clasifica al cliente con el reloj del sistema.
func Classify(totalSpent decimal.Decimal, totalOrders, loyaltyPoints int64, lastOrderDate *time.Time) Segment {
	return ClassifyAt(time.Now(), totalSpent, totalOrders, loyaltyPoints, lastOrderDate)
}

// ClassifyAt clasifica al cliente evaluando las reglas contra el instante now.
// Un lastOrderDate nil cuenta como "hace infinito": solo descalifica las reglas
// con ventana de recencia (loyal y regular), nunca la de vip.
func ClassifyAt(now time.Time, totalSpent decimal.Decimal, totalOrders, loyaltyPoints int64, lastOrderDate *time.Time) Segment {
	days := daysSince(now, lastOrderDate)
	switch {
	case totalSpent.GreaterThanOrEqual(vipSpentThreshold) ||
		loyaltyPoints >= vipPointsThreshold ||
		totalOrders >= vipOrdersThreshold:
		return SegmentVIP
	case totalOrders >= loyalOrdersMin && loyaltyPoints >= loyalPointsMin && days <= loyalMaxDays:
		return SegmentLoyal
	case totalOrders >= regularOrdersMin && days <= regularMaxDays:
		return SegmentRegular
	case days > inactiveMinDays && totalOrders > 0:
		return SegmentInactive
	default:
		return SegmentNew
	}
}

// PointsForPurchase puntos de fidelidad que otorga una compra: un punto por
// cada $1.000 del total, truncando hacia abajo.
func PointsForPurchase(total decimal.Decimal) int64 {
	return total.Div(pointsUnit).Floor().IntPart()
}

// Valid indica si s es uno de los segmentos conocidos (para el override manual).
func Valid(s Segment) bool {
	switch s {
	case SegmentVIP, SegmentLoyal, SegmentRegular, SegmentInactive, SegmentNew:
		return true
	}
	return false
}

// daysSince días transcurridos desde la última compra, con fracción.
func daysSince(now time.Time, last *time.Time) float64 {
	if last == nil {
		return math.Inf(1)
	}
	return now.Sub(*last).Hours() / 24
}
