package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest body para crear/actualizar un artículo.
type ItemRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	Barcode        string          `json:"barcode,omitempty"`
	AutoDeduct     bool            `json:"auto_deduct"`
}

// ItemResponse representación de un artículo en respuestas.
type ItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	Barcode        string          `json:"barcode,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	AutoDeduct     bool            `json:"auto_deduct"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
