package dto

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Corrección manual de existencias (merma, conteo físico, daño); el delta
// puede ser positivo o negativo pero no cero.
type AdjustStockRequest struct {
	ProductID     string `json:"product_id"`
	DeltaQuantity int64  `json:"delta_quantity"`
	Reason        string `json:"reason,omitempty"`
}

// AdjustStockResponse existencias resultantes tras el ajuste.
type AdjustStockResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}
