package dto

import "github.com/shopspring/decimal"

// MovementRequest body para POST /api/inventory/movements.
// kind ∈ {RECEIVE, CONSUME, SELL, ADJUST}; AUTO_DEDUCT solo entra por webhook.
type MovementRequest struct {
	Kind          string          `json:"kind"`
	ItemID        string          `json:"item_id"`
	LocationID    string          `json:"location_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// MovementResponse resultado de un movimiento aplicado.
type MovementResponse struct {
	NewQuantity  decimal.Decimal `json:"new_quantity"`
	AppliedDelta decimal.Decimal `json:"applied_delta"`
	SaleID       string          `json:"sale_id,omitempty"`
}
