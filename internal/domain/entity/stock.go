package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemLocationStock representa el stock actual de un artículo en una ubicación
// (tabla intermedia item_locations). Quantity nunca es negativo.
type ItemLocationStock struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
