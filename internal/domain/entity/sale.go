package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fuentes de venta.
const (
	SaleSourceManual = "MANUAL"
	SaleSourceSquare = "SQUARE"
	SaleSourceOther  = "OTHER"
)

// Sale representa una transacción de venta (manual o del POS).
// Una venta corresponde exactamente a una entrada SALE del libro con delta
// negativo de la misma magnitud.
type Sale struct {
	ID            string
	ItemID        string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Source        string
	PaymentMethod string
	CustomerName  string
	UserID        string // vacío = venta automática del POS
	CreatedAt     time.Time
}

// Total devuelve el total de la venta (cantidad × precio unitario).
func (s *Sale) Total() decimal.Decimal {
	return s.Quantity.Mul(s.UnitPrice)
}
