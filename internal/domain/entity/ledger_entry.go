package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio del libro de inventario.
const (
	ChangeTypeReceive = "RECEIVE"
	ChangeTypeConsume = "CONSUME"
	ChangeTypeSale    = "SALE"
	ChangeTypeAdjust  = "ADJUST"
	ChangeTypeWaste   = "WASTE"
)

// Razones de consumo. Wasted/Expired/Damaged se registran como WASTE,
// el resto como CONSUME.
const (
	ReasonConsumed = "consumed"
	ReasonWasted   = "wasted"
	ReasonExpired  = "expired"
	ReasonDamaged  = "damaged"
	ReasonOther    = "other"
)

// ChangeTypeForReason mapea una razón de consumo al tipo de cambio del libro.
func ChangeTypeForReason(reason string) string {
	switch reason {
	case ReasonWasted, ReasonExpired, ReasonDamaged:
		return ChangeTypeWaste
	default:
		return ChangeTypeConsume
	}
}

// LedgerEntry es un registro inmutable del libro de inventario (inventory_log).
// Solo se agrega; nunca se actualiza ni borra, salvo el borrado en cascada del
// artículo. UnitCost es una foto del costo al momento del movimiento.
type LedgerEntry struct {
	ID            string
	ItemID        string
	ChangeType    string
	QuantityDelta decimal.Decimal // con signo: positivo entra, negativo sale
	UnitCost      decimal.Decimal
	UserID        string // vacío = movimiento atribuido al sistema
	Notes         string
	CreatedAt     time.Time
}
